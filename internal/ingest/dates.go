package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The TenUp result cards mix three date spellings: ISO (from older JSON
// dumps), numeric French (05/10/2025, 5-10-25) and textual French
// ("5 oct. 2025"). Matching is positional: the first date substring found in
// the input wins.
var (
	isoDateRegex     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	numericDateRegex = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	textualDateRegex = regexp.MustCompile(`(\d{1,2})\s+([a-zéèêûùàâô]+\.?)\s+(\d{4})`)
)

var accentReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e",
	"û", "u", "ù", "u",
	"à", "a", "â", "a",
	"ô", "o",
)

// frenchMonths maps accent-stripped, dot-stripped month tokens to month
// numbers. Both abbreviated and full forms show up in the wild.
var frenchMonths = map[string]int{
	"jan": 1, "janv": 1, "janvier": 1,
	"fev": 2, "fevr": 2, "fevrier": 2,
	"mars": 3,
	"avr":  4, "avril": 4,
	"mai":  5,
	"juin": 6,
	"juil": 7, "juillet": 7,
	"aout": 8,
	"sep":  9, "sept": 9, "septembre": 9,
	"oct": 10, "octobre": 10,
	"nov": 11, "novembre": 11,
	"dec": 12, "decembre": 12,
}

// NormalizeDate parses the first date expression found in text and returns
// it as YYYY-MM-DD. It reports false when no expression matches or the
// matched expression is not a valid calendar date.
func NormalizeDate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	kind, match := firstDateMatch(strings.ToLower(text))
	if match == nil {
		return "", false
	}
	return normalizeMatch(kind, match)
}

// ExtractDateRange pulls a start and end date out of combined text such as
// "12 nov. 2025 - 14 nov. 2025". The first parseable date is the start, the
// second the end; a single date means end equals start. Both are empty when
// nothing parses.
func ExtractDateRange(text string) (string, string) {
	dates := allDates(strings.ToLower(strings.TrimSpace(text)))
	switch len(dates) {
	case 0:
		return "", ""
	case 1:
		return dates[0], dates[0]
	default:
		return dates[0], dates[1]
	}
}

type dateKind int

const (
	dateKindISO dateKind = iota
	dateKindNumeric
	dateKindTextual
)

// firstDateMatch returns the earliest match across the three patterns. ISO
// beats numeric at the same offset so "2025-10-05" is not read as a French
// day-month pair.
func firstDateMatch(text string) (dateKind, []string) {
	bestKind := dateKindISO
	var best []string
	bestIndex := -1

	for _, candidate := range []struct {
		kind dateKind
		re   *regexp.Regexp
	}{
		{dateKindISO, isoDateRegex},
		{dateKindNumeric, numericDateRegex},
		{dateKindTextual, textualDateRegex},
	} {
		loc := candidate.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		if bestIndex == -1 || loc[0] < bestIndex {
			bestIndex = loc[0]
			bestKind = candidate.kind
			best = submatchesAt(candidate.re, text, loc)
		}
	}
	return bestKind, best
}

func submatchesAt(re *regexp.Regexp, text string, loc []int) []string {
	out := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			out = append(out, "")
			continue
		}
		out = append(out, text[loc[i]:loc[i+1]])
	}
	return out
}

func allDates(text string) []string {
	type hit struct {
		index int
		kind  dateKind
		match []string
	}

	var hits []hit
	for _, candidate := range []struct {
		kind dateKind
		re   *regexp.Regexp
	}{
		{dateKindISO, isoDateRegex},
		{dateKindNumeric, numericDateRegex},
		{dateKindTextual, textualDateRegex},
	} {
		for _, loc := range candidate.re.FindAllStringSubmatchIndex(text, -1) {
			hits = append(hits, hit{
				index: loc[0],
				kind:  candidate.kind,
				match: submatchesAt(candidate.re, text, loc),
			})
		}
	}

	// Insertion sort by position; batches carry at most a handful of dates.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].index < hits[j-1].index; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	out := make([]string, 0, len(hits))
	lastEnd := -1
	for _, h := range hits {
		if h.index <= lastEnd {
			continue
		}
		iso, ok := normalizeMatch(h.kind, h.match)
		if !ok {
			continue
		}
		out = append(out, iso)
		lastEnd = h.index + len(h.match[0]) - 1
	}
	return out
}

func normalizeMatch(kind dateKind, match []string) (string, bool) {
	switch kind {
	case dateKindISO:
		return buildISO(match[1], match[2], match[3])
	case dateKindNumeric:
		return buildISO(match[3], match[2], match[1])
	case dateKindTextual:
		token := accentReplacer.Replace(strings.TrimSuffix(match[2], "."))
		month, ok := frenchMonths[token]
		if !ok {
			return "", false
		}
		return buildISO(match[3], strconv.Itoa(month), match[1])
	default:
		return "", false
	}
}

// buildISO assembles and calendar-checks a date. Two-digit years are read as
// the 2000s.
func buildISO(yearText, monthText, dayText string) (string, bool) {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(monthText)
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return "", false
	}

	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return "", false
	}
	return date.Format("2006-01-02"), true
}
