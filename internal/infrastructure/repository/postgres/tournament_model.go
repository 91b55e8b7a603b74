package postgres

import (
	"time"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
)

// tournamentTableModel maps the tournaments table. Optional text columns use
// the empty string for "unknown"; dates are stored as ISO YYYY-MM-DD text so
// the read-path ordering stays lexicographic.
type tournamentTableModel struct {
	ID              int64     `db:"id"`
	TournamentID    string    `db:"tournament_id"`
	Name            string    `db:"name"`
	Level           string    `db:"level"`
	Category        string    `db:"category"`
	ClubName        string    `db:"club_name"`
	City            string    `db:"city"`
	Region          string    `db:"region"`
	StartDate       string    `db:"start_date"`
	EndDate         string    `db:"end_date"`
	DetailURL       string    `db:"detail_url"`
	RegistrationURL string    `db:"registration_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type tournamentInsertModel struct {
	TournamentID    string    `db:"tournament_id"`
	Name            string    `db:"name"`
	Level           string    `db:"level"`
	Category        string    `db:"category"`
	ClubName        string    `db:"club_name"`
	City            string    `db:"city"`
	Region          string    `db:"region"`
	StartDate       string    `db:"start_date"`
	EndDate         string    `db:"end_date"`
	DetailURL       string    `db:"detail_url"`
	RegistrationURL string    `db:"registration_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:              m.TournamentID,
		Name:            m.Name,
		Level:           m.Level,
		Category:        m.Category,
		ClubName:        m.ClubName,
		City:            m.City,
		Region:          m.Region,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		DetailURL:       m.DetailURL,
		RegistrationURL: m.RegistrationURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func insertModelFromDomain(item tournament.Tournament, now time.Time) tournamentInsertModel {
	return tournamentInsertModel{
		TournamentID:    item.ID,
		Name:            item.Name,
		Level:           item.Level,
		Category:        item.Category,
		ClubName:        item.ClubName,
		City:            item.City,
		Region:          item.Region,
		StartDate:       item.StartDate,
		EndDate:         item.EndDate,
		DetailURL:       item.DetailURL,
		RegistrationURL: item.RegistrationURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
