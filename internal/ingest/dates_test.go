package ingest

import "testing"

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"iso", "2025-10-05", "2025-10-05", true},
		{"iso embedded", "du 2025-10-05 au soir", "2025-10-05", true},
		{"numeric slash", "05/10/2025", "2025-10-05", true},
		{"numeric dash short year", "5-10-25", "2025-10-05", true},
		{"textual abbreviated", "5 oct. 2025", "2025-10-05", true},
		{"textual full month", "12 novembre 2025", "2025-11-12", true},
		{"textual accented", "1 février 2026", "2026-02-01", true},
		{"textual august", "15 août 2025", "2025-08-15", true},
		{"uppercase input", "5 OCT. 2025", "2025-10-05", true},
		{"leading noise", "A partir du 5 oct. 2025", "2025-10-05", true},
		{"invalid calendar date", "31 févr. 2025", "", false},
		{"invalid numeric", "32/13/2025", "", false},
		{"unknown month token", "5 brumaire 2025", "", false},
		{"no date at all", "P100 Messieurs", "", false},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := NormalizeDate(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("NormalizeDate(%q) = (%q, %t), want (%q, %t)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNormalizeDate_ISOBeatsNumericAtSameOffset(t *testing.T) {
	t.Parallel()

	// The trailing "10-05" of an ISO date must not be read as day-month.
	got, ok := NormalizeDate("2025-10-05")
	if !ok || got != "2025-10-05" {
		t.Fatalf("got (%q, %t)", got, ok)
	}
}

func TestExtractDateRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		in        string
		wantStart string
		wantEnd   string
	}{
		{"two textual dates", "12 nov. 2025 - 14 nov. 2025", "2025-11-12", "2025-11-14"},
		{"two numeric dates", "du 05/10/2025 au 07/10/2025", "2025-10-05", "2025-10-07"},
		{"mixed formats", "2025-10-05 au 7 oct. 2025", "2025-10-05", "2025-10-07"},
		{"single date", "5 oct. 2025", "2025-10-05", "2025-10-05"},
		{"invalid skipped", "31 févr. 2025 - 3 mars 2025", "2025-03-03", "2025-03-03"},
		{"nothing", "tournoi de padel", "", ""},
		{"empty", "", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			start, end := ExtractDateRange(tc.in)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Fatalf("ExtractDateRange(%q) = (%q, %q), want (%q, %q)", tc.in, start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}


