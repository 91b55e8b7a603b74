package ingest

import (
	"strings"
	"testing"
)

func TestResolveID(t *testing.T) {
	t.Parallel()

	t.Run("explicit id wins", func(t *testing.T) {
		t.Parallel()

		got := ResolveID("https://tenup.fft.fr/tournoi/82300541", " 99 ")
		if got != "99" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("trailing url digits", func(t *testing.T) {
		t.Parallel()

		cases := map[string]string{
			"https://tenup.fft.fr/tournoi/82300541":   "82300541",
			"https://tenup.fft.fr/tournoi/82300541/":  "82300541",
			"https://tenup.fft.fr/tournoi/82300541#x": "82300541",
		}
		for url, want := range cases {
			if got := ResolveID(url, ""); got != want {
				t.Fatalf("ResolveID(%q) = %q, want %q", url, got, want)
			}
		}
	})

	t.Run("hash fallback for digitless url", func(t *testing.T) {
		t.Parallel()

		got := ResolveID("https://tenup.fft.fr/tournoi/open-de-lyon", "")
		if !strings.HasPrefix(got, "h") || len(got) != 13 {
			t.Fatalf("got %q, want h-prefixed 12-char hash", got)
		}

		// Deterministic across re-scrapes of the same URL.
		if again := ResolveID("https://tenup.fft.fr/tournoi/open-de-lyon", ""); again != got {
			t.Fatalf("hash not stable: %q vs %q", again, got)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		t.Parallel()

		if got := ResolveID("", ""); got != "" {
			t.Fatalf("got %q, want empty", got)
		}
	})
}

func TestDegradedID(t *testing.T) {
	t.Parallel()

	got := DegradedID("Open de Lyon", "2025-10-05", "2025-10-07")
	if got != "open-de-lyon-2025-10-05-2025-10-07" {
		t.Fatalf("got %q", got)
	}

	// No usable characters at all still yields a deterministic id.
	empty := DegradedID("", "", "")
	if !strings.HasPrefix(empty, "h") {
		t.Fatalf("got %q, want hash fallback", empty)
	}
}
