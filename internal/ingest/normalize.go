package ingest

import (
	"strconv"
	"strings"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
)

// Alias lists per canonical field, in priority order. Scraping strategies
// were rewritten several times and each generation named fields differently;
// the first non-empty alias wins.
var (
	nameAliases      = []string{"name", "title"}
	detailURLAliases = []string{"detail_url", "url"}
	startAliases     = []string{"start_date", "date"}
	endAliases       = []string{"end_date"}
	rangeAliases     = []string{"dates", "date_range"}
)

// Normalize maps one raw scraped record onto the canonical Tournament shape.
// Strings are trimmed, empty values dropped, dates run through NormalizeDate
// and the identity is computed last from the resolved detail URL. Unparsable
// dates leave the canonical field empty rather than guessing.
func Normalize(raw tournament.RawRecord) tournament.Tournament {
	candidate := tournament.Tournament{
		Name:            stringAny(raw, nameAliases...),
		Level:           stringAny(raw, "level"),
		Category:        stringAny(raw, "category"),
		ClubName:        stringAny(raw, "club_name"),
		City:            stringAny(raw, "city"),
		Region:          stringAny(raw, "region"),
		DetailURL:       stringAny(raw, detailURLAliases...),
		RegistrationURL: stringAny(raw, "registration_url"),
	}
	if candidate.Name == "" {
		candidate.Name = tournament.DefaultName
	}

	candidate.StartDate, candidate.EndDate = normalizeDates(raw)

	if candidate.DetailURL != "" {
		candidate.ID = ResolveID(candidate.DetailURL, stringAny(raw, "tournament_id"))
	} else if explicit := stringAny(raw, "tournament_id"); explicit != "" {
		candidate.ID = explicit
	} else {
		candidate.ID = DegradedID(candidate.Name, candidate.StartDate, candidate.EndDate)
	}

	return candidate
}

func normalizeDates(raw tournament.RawRecord) (string, string) {
	start, _ := NormalizeDate(stringAny(raw, startAliases...))
	end, _ := NormalizeDate(stringAny(raw, endAliases...))

	// Some card layouts expose a single combined range instead of separate
	// fields.
	if start == "" {
		if combined := stringAny(raw, rangeAliases...); combined != "" {
			start, end = ExtractDateRange(combined)
		}
	}
	if end == "" {
		end = start
	}
	return start, end
}

// stringAny returns the first non-empty value among the aliases, trimmed.
// Raw feeds are JSON-decoded so numbers arrive as float64.
func stringAny(raw tournament.RawRecord, keys ...string) string {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		text := scalarToString(value)
		if text != "" {
			return text
		}
	}
	return ""
}

func scalarToString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}
