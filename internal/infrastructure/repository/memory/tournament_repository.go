package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
)

// TournamentRepository keeps the catalogue in memory with the same merge
// and ordering semantics as the postgres repository. It backs tests and
// local runs without a database.
type TournamentRepository struct {
	mu   sync.RWMutex
	byID map[string]*tournament.Tournament
	now  func() time.Time
}

func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{
		byID: make(map[string]*tournament.Tournament),
		now:  time.Now,
	}
}

func (r *TournamentRepository) UpsertBatch(_ context.Context, candidates []tournament.Tournament) (tournament.BatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result tournament.BatchResult
	now := r.now().UTC()

	urlOwner := make(map[string]string, len(r.byID))
	for id, row := range r.byID {
		urlOwner[row.DetailURL] = id
	}

	for _, candidate := range candidates {
		if owner, taken := urlOwner[candidate.DetailURL]; taken && owner != candidate.ID {
			return tournament.BatchResult{}, fmt.Errorf("detail url %s already owned by id=%s: %w", candidate.DetailURL, owner, tournament.ErrIdentityConflict)
		}

		stored, found := r.byID[candidate.ID]
		if !found {
			item := candidate
			item.CreatedAt = now
			item.UpdatedAt = now
			r.byID[candidate.ID] = &item
			urlOwner[item.DetailURL] = item.ID
			result.Inserted++
			continue
		}

		if merged, changed := mergeNonEmpty(*stored, candidate); changed {
			merged.UpdatedAt = now
			*stored = merged
			urlOwner[merged.DetailURL] = merged.ID
			result.Updated++
		} else {
			result.Unchanged++
		}
	}

	return result, nil
}

func (r *TournamentRepository) List(_ context.Context, limit int) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]tournament.Tournament, 0, len(r.byID))
	for _, row := range r.byID {
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		iEmpty, jEmpty := rows[i].StartDate == "", rows[j].StartDate == ""
		if iEmpty != jEmpty {
			return jEmpty
		}
		if rows[i].StartDate != rows[j].StartDate {
			return rows[i].StartDate < rows[j].StartDate
		}
		return rows[i].ID > rows[j].ID
	})

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	return rows, nil
}

func (r *TournamentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

// mergeNonEmpty applies the asymmetric merge: candidate fields that are
// non-empty and differ replace stored values; everything else is kept.
func mergeNonEmpty(stored, candidate tournament.Tournament) (tournament.Tournament, bool) {
	changed := false
	apply := func(target *string, incoming string) {
		if incoming != "" && incoming != *target {
			*target = incoming
			changed = true
		}
	}

	apply(&stored.Name, candidate.Name)
	apply(&stored.Level, candidate.Level)
	apply(&stored.Category, candidate.Category)
	apply(&stored.ClubName, candidate.ClubName)
	apply(&stored.City, candidate.City)
	apply(&stored.Region, candidate.Region)
	apply(&stored.StartDate, candidate.StartDate)
	apply(&stored.EndDate, candidate.EndDate)
	apply(&stored.DetailURL, candidate.DetailURL)
	apply(&stored.RegistrationURL, candidate.RegistrationURL)

	return stored, changed
}
