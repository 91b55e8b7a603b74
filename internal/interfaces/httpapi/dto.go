package httpapi

import "github.com/tenpadel/catalogue/internal/domain/tournament"

// ingestRequest triggers one batch: either inline raw records or a feed
// reference (dump URL, file, or directory) resolved by the feed loader.
type ingestRequest struct {
	Records []tournament.RawRecord `json:"records" validate:"required_without=Feed"`
	Feed    string                 `json:"feed" validate:"required_without=Records"`
}

type ingestResponse struct {
	OK bool `json:"ok"`
	tournament.Report
}
