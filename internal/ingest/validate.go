package ingest

import (
	"strings"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
)

// Validate classifies a candidate without mutating it. Only the minimum
// addressability invariant is enforced: a record must carry a fetchable
// detail URL or it cannot be keyed and re-checked on later scrapes.
func Validate(candidate tournament.Tournament) (tournament.RejectReason, bool) {
	url := strings.TrimSpace(candidate.DetailURL)
	if url == "" {
		return tournament.RejectMissingDetailURL, false
	}
	if !strings.HasPrefix(url, "http") {
		return tournament.RejectBadDetailURL, false
	}
	return "", true
}
