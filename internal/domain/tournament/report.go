package tournament

// RejectReason classifies why a scraped record was excluded from a batch.
type RejectReason string

const (
	RejectMissingDetailURL RejectReason = "missing_detail_url"
	RejectBadDetailURL     RejectReason = "bad_detail_url"
)

// Report describes the outcome of one ingestion batch. It is the only
// channel by which callers learn what the batch did; it is always fully
// populated on success.
type Report struct {
	Received         int                  `json:"received"`
	Valid            int                  `json:"valid"`
	Inserted         int                  `json:"inserted"`
	Updated          int                  `json:"updated"`
	Unchanged        int                  `json:"skipped"`
	RejectedByReason map[RejectReason]int `json:"rejected_by_reason,omitempty"`
	TotalRows        int                  `json:"db_rows"`
}
