package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	require.True(t, isNotFound(sql.ErrNoRows))
	require.True(t, isNotFound(fmt.Errorf("get tournament: %w", sql.ErrNoRows)))
	require.False(t, isNotFound(nil))
	require.False(t, isNotFound(errors.New("other")))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	require.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	require.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	require.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("other")))
	require.False(t, isUniqueViolation(nil))
}

func TestMergeColumns_CoverEveryUpdatableColumn(t *testing.T) {
	t.Parallel()

	candidate := tournament.Tournament{
		ID:              "82300541",
		Name:            "Open de Lyon",
		Level:           "P250",
		Category:        "Messieurs",
		ClubName:        "Lyon Padel Club",
		City:            "Lyon",
		Region:          "Auvergne-Rhone-Alpes",
		StartDate:       "2025-10-05",
		EndDate:         "2025-10-07",
		DetailURL:       "https://tenup.fft.fr/tournoi/82300541",
		RegistrationURL: "https://tenup.fft.fr/inscription/82300541",
	}
	stored := tournamentTableModel{TournamentID: "82300541", Name: "Tournoi"}

	cols := mergeColumns(candidate, stored)
	require.Len(t, cols, 10)

	seen := make(map[string]bool, len(cols))
	for _, col := range cols {
		seen[col.column] = true
	}
	for _, want := range []string{
		"name", "level", "category", "club_name", "city", "region",
		"start_date", "end_date", "detail_url", "registration_url",
	} {
		require.True(t, seen[want], "column %s missing from merge set", want)
	}
}

func TestInsertModelFromDomain(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	model := insertModelFromDomain(tournament.Tournament{
		ID:        "82300541",
		Name:      "Open de Lyon",
		DetailURL: "https://tenup.fft.fr/tournoi/82300541",
	}, now)

	require.Equal(t, "82300541", model.TournamentID)
	require.Equal(t, now, model.CreatedAt)
	require.Equal(t, now, model.UpdatedAt)
}
