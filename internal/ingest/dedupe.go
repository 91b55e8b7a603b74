package ingest

import "github.com/tenpadel/catalogue/internal/domain/tournament"

// Dedupe collapses candidates that resolved to the same identity within one
// batch. A single scrape pass can hit the same tournament through several
// selector strategies or list pages. The most complete duplicate wins;
// on a tie the first-seen record is kept, and output order follows the
// first occurrence of each identity.
func Dedupe(candidates []tournament.Tournament) []tournament.Tournament {
	if len(candidates) < 2 {
		return candidates
	}

	order := make([]string, 0, len(candidates))
	best := make(map[string]tournament.Tournament, len(candidates))

	for _, candidate := range candidates {
		kept, seen := best[candidate.ID]
		if !seen {
			order = append(order, candidate.ID)
			best[candidate.ID] = candidate
			continue
		}
		if candidate.OptionalFieldCount() > kept.OptionalFieldCount() {
			best[candidate.ID] = candidate
		}
	}

	out := make([]tournament.Tournament, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	return out
}
