package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
)

// hashedIDPrefix marks identifiers derived from hashing rather than taken
// from the source, so id provenance stays inspectable in the table.
const hashedIDPrefix = "h"

var (
	trailingIDRegex = regexp.MustCompile(`(\d+)[^0-9]*$`)
	nonWordRegex    = regexp.MustCompile(`\W+`)
)

// ResolveID derives the stable tournament identity. Preference order:
// an explicit id from the extraction layer, the trailing numeric token of
// the detail URL, then a fixed-width hash of the URL. Explicit ids survive
// site redesigns and URL-derived ids survive page reshuffles, so both beat
// hashing. The result is empty only when both inputs are empty.
func ResolveID(detailURL, explicitID string) string {
	if explicit := strings.TrimSpace(explicitID); explicit != "" {
		return explicit
	}

	detailURL = strings.TrimSpace(detailURL)
	if detailURL == "" {
		return ""
	}
	if match := trailingIDRegex.FindStringSubmatch(detailURL); match != nil {
		return match[1]
	}
	return hashedIDPrefix + shortHash(detailURL)
}

// DegradedID builds an identity from the title and dates for records whose
// card exposes no URL at all. Title rewording changes the id, so records
// carrying one are lower trust; validation keeps them out of storage and
// they only matter for in-batch grouping.
func DegradedID(name, startDate, endDate string) string {
	joined := name + "-" + startDate + "-" + endDate
	slug := strings.Trim(nonWordRegex.ReplaceAllString(strings.ToLower(joined), "-"), "-")
	if slug == "" {
		return hashedIDPrefix + shortHash(joined)
	}
	return slug
}

func shortHash(value string) string {
	digest := sha1.Sum([]byte(value))
	return hex.EncodeToString(digest[:])[:12]
}
