package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tenpadel/catalogue/internal/domain/tournament"
	qb "github.com/tenpadel/catalogue/internal/platform/querybuilder"
)

// ingestLockKey serializes concurrent ingestion batches. The advisory lock
// is transaction-scoped, so it releases on commit or rollback.
const ingestLockKey int64 = 902211

type TournamentRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db, now: time.Now}
}

// mergeColumn pairs one updatable column with its candidate and stored
// values for the asymmetric merge: a non-empty differing candidate value
// wins, an empty candidate value never erases stored data.
type mergeColumn struct {
	column    string
	candidate string
	stored    string
}

func mergeColumns(candidate tournament.Tournament, stored tournamentTableModel) []mergeColumn {
	return []mergeColumn{
		{"name", candidate.Name, stored.Name},
		{"level", candidate.Level, stored.Level},
		{"category", candidate.Category, stored.Category},
		{"club_name", candidate.ClubName, stored.ClubName},
		{"city", candidate.City, stored.City},
		{"region", candidate.Region, stored.Region},
		{"start_date", candidate.StartDate, stored.StartDate},
		{"end_date", candidate.EndDate, stored.EndDate},
		{"detail_url", candidate.DetailURL, stored.DetailURL},
		{"registration_url", candidate.RegistrationURL, stored.RegistrationURL},
	}
}

// UpsertBatch applies one ingestion batch in a single transaction. Unknown
// identities are inserted, known ones receive only the differing non-empty
// fields, untouched rows are counted as unchanged. A unique violation on
// tournament_id or detail_url means identity resolution collided with a
// different tournament; the batch fails rather than merging wrongly.
func (r *TournamentRepository) UpsertBatch(ctx context.Context, candidates []tournament.Tournament) (tournament.BatchResult, error) {
	var result tournament.BatchResult
	if len(candidates) == 0 {
		return result, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin tx upsert tournaments: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", ingestLockKey); err != nil {
		return result, fmt.Errorf("acquire ingest lock: %w", err)
	}

	now := r.now().UTC()
	for _, candidate := range candidates {
		selectQuery, selectArgs, err := qb.Select("*").From("tournaments").
			Where(qb.Eq("tournament_id", candidate.ID)).
			ToSQL()
		if err != nil {
			return tournament.BatchResult{}, fmt.Errorf("build select tournament query: %w", err)
		}

		var stored tournamentTableModel
		err = tx.GetContext(ctx, &stored, selectQuery, selectArgs...)
		switch {
		case isNotFound(err):
			insertQuery, insertArgs, err := qb.InsertModel("tournaments", insertModelFromDomain(candidate, now))
			if err != nil {
				return tournament.BatchResult{}, fmt.Errorf("build insert tournament query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
				if isUniqueViolation(err) {
					return tournament.BatchResult{}, fmt.Errorf("insert tournament id=%s url=%s: %w", candidate.ID, candidate.DetailURL, tournament.ErrIdentityConflict)
				}
				return tournament.BatchResult{}, fmt.Errorf("insert tournament id=%s: %w", candidate.ID, err)
			}
			result.Inserted++
			continue
		case err != nil:
			return tournament.BatchResult{}, fmt.Errorf("select tournament id=%s: %w", candidate.ID, err)
		}

		update := qb.Update("tournaments")
		changes := 0
		for _, col := range mergeColumns(candidate, stored) {
			if col.candidate == "" || col.candidate == col.stored {
				continue
			}
			update.Set(col.column, col.candidate)
			changes++
		}
		if changes == 0 {
			result.Unchanged++
			continue
		}

		updateQuery, updateArgs, err := update.
			Set("updated_at", now).
			Where(qb.Eq("tournament_id", candidate.ID)).
			ToSQL()
		if err != nil {
			return tournament.BatchResult{}, fmt.Errorf("build update tournament query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			if isUniqueViolation(err) {
				return tournament.BatchResult{}, fmt.Errorf("update tournament id=%s url=%s: %w", candidate.ID, candidate.DetailURL, tournament.ErrIdentityConflict)
			}
			return tournament.BatchResult{}, fmt.Errorf("update tournament id=%s: %w", candidate.ID, err)
		}
		result.Updated++
	}

	if err := tx.Commit(); err != nil {
		return tournament.BatchResult{}, fmt.Errorf("commit upsert tournaments tx: %w", err)
	}
	return result, nil
}

// List returns rows ordered by start date ascending with unknown dates
// last, ties broken by tournament id descending. limit <= 0 means no limit.
func (r *TournamentRepository) List(ctx context.Context, limit int) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		OrderBy("(start_date = '')", "start_date ASC", "tournament_id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TournamentRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("tournaments").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count tournaments query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count tournaments: %w", err)
	}
	return count, nil
}
