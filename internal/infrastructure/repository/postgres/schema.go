package postgres

import (
	"context"
	"fmt"
)

const createTournamentsTable = `
CREATE TABLE IF NOT EXISTS tournaments (
    id BIGSERIAL PRIMARY KEY,
    tournament_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    level TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    club_name TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL DEFAULT '',
    start_date TEXT NOT NULL DEFAULT '',
    end_date TEXT NOT NULL DEFAULT '',
    detail_url TEXT NOT NULL UNIQUE,
    registration_url TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const createStartDateIndex = `
CREATE INDEX IF NOT EXISTS idx_tournaments_start_date ON tournaments (start_date)`

// EnsureSchema creates the tournaments table and its index when they do
// not exist yet. It is idempotent and safe to call on every boot; the
// migrations under migrations/ stay the source of truth for evolutions.
func (r *TournamentRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createTournamentsTable, createStartDateIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure tournaments schema: %w", err)
		}
	}
	return nil
}
