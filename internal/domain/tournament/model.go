package tournament

import "time"

// DefaultName is used when the source provides no usable title.
const DefaultName = "Tournoi"

// RawRecord is one untyped entry produced by the extraction layer. Field
// names vary between scraping strategies; no shape is guaranteed.
type RawRecord map[string]any

// Tournament is the canonical, identity-bearing entity persisted to storage.
// Optional fields are empty strings when unknown.
type Tournament struct {
	ID              string
	Name            string
	Level           string
	Category        string
	ClubName        string
	City            string
	Region          string
	StartDate       string
	EndDate         string
	DetailURL       string
	RegistrationURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OptionalFieldCount reports how many optional fields carry a value. The
// deduplicator uses it to keep the most complete duplicate within a batch.
func (t Tournament) OptionalFieldCount() int {
	count := 0
	for _, value := range []string{
		t.Level,
		t.Category,
		t.ClubName,
		t.City,
		t.Region,
		t.StartDate,
		t.EndDate,
		t.RegistrationURL,
	} {
		if value != "" {
			count++
		}
	}
	return count
}
