package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
	"github.com/tenpadel/catalogue/internal/infrastructure/repository/memory"
)

type staticFeed struct {
	records []tournament.RawRecord
	err     error
}

func (f staticFeed) Load(context.Context, string) ([]tournament.RawRecord, error) {
	return f.records, f.err
}

func rawBatch() []tournament.RawRecord {
	return []tournament.RawRecord{
		{
			"name":       "Open de Lyon",
			"detail_url": "https://tenup.fft.fr/tournoi/82300541",
			"start_date": "5 oct. 2025",
			"end_date":   "7 oct. 2025",
			"level":      "P250",
			"city":       "Lyon",
		},
		{
			"title": "Padel Tour Marseille",
			"url":   "https://tenup.fft.fr/tournoi/82300777",
			"dates": "12 nov. 2025 - 14 nov. 2025",
		},
		{
			"name": "Sans URL",
		},
		{
			"name":       "Mauvaise URL",
			"detail_url": "/tournoi/123",
		},
	}
}

func TestCatalogueService_Ingest_ReportsBatchOutcome(t *testing.T) {
	repo := memory.NewTournamentRepository()
	service := NewCatalogueService(repo, nil, nil)

	report, err := service.Ingest(t.Context(), rawBatch())
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if report.Received != 4 || report.Valid != 2 {
		t.Fatalf("received=%d valid=%d", report.Received, report.Valid)
	}
	if report.Inserted != 2 || report.Updated != 0 || report.Unchanged != 0 {
		t.Fatalf("inserted=%d updated=%d unchanged=%d", report.Inserted, report.Updated, report.Unchanged)
	}
	if report.RejectedByReason[tournament.RejectMissingDetailURL] != 1 {
		t.Fatalf("missing url rejections: %+v", report.RejectedByReason)
	}
	if report.RejectedByReason[tournament.RejectBadDetailURL] != 1 {
		t.Fatalf("bad url rejections: %+v", report.RejectedByReason)
	}
	if report.TotalRows != 2 {
		t.Fatalf("total rows = %d", report.TotalRows)
	}
}

func TestCatalogueService_Ingest_SecondPassIsUnchanged(t *testing.T) {
	repo := memory.NewTournamentRepository()
	service := NewCatalogueService(repo, nil, nil)

	if _, err := service.Ingest(t.Context(), rawBatch()); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	report, err := service.Ingest(t.Context(), rawBatch())
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if report.Inserted != 0 || report.Updated != 0 || report.Unchanged != 2 {
		t.Fatalf("inserted=%d updated=%d unchanged=%d", report.Inserted, report.Updated, report.Unchanged)
	}
	if report.TotalRows != 2 {
		t.Fatalf("total rows = %d", report.TotalRows)
	}
}

func TestCatalogueService_Ingest_MergeNeverErasesKnownData(t *testing.T) {
	repo := memory.NewTournamentRepository()
	service := NewCatalogueService(repo, nil, nil)

	full := tournament.RawRecord{
		"name":       "Open de Lyon",
		"detail_url": "https://tenup.fft.fr/tournoi/82300541",
		"start_date": "2025-10-05",
		"level":      "P250",
		"city":       "Lyon",
	}
	if _, err := service.Ingest(t.Context(), []tournament.RawRecord{full}); err != nil {
		t.Fatalf("ingest full: %v", err)
	}

	// A later sparse re-scrape of the same page must not erase anything,
	// but a new non-empty value must win.
	sparse := tournament.RawRecord{
		"name":       "Open de Lyon P250",
		"detail_url": "https://tenup.fft.fr/tournoi/82300541",
	}
	report, err := service.Ingest(t.Context(), []tournament.RawRecord{sparse})
	if err != nil {
		t.Fatalf("ingest sparse: %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("updated = %d", report.Updated)
	}

	items, err := service.List(t.Context(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("rows = %d", len(items))
	}
	got := items[0]
	if got.Name != "Open de Lyon P250" {
		t.Fatalf("name not updated: %q", got.Name)
	}
	if got.Level != "P250" || got.City != "Lyon" || got.StartDate != "2025-10-05" {
		t.Fatalf("known data erased: %+v", got)
	}
}

func TestCatalogueService_Ingest_EmptyBatchLeavesStorageUntouched(t *testing.T) {
	repo := memory.NewTournamentRepository()
	service := NewCatalogueService(repo, nil, nil)

	report, err := service.Ingest(t.Context(), []tournament.RawRecord{
		{"name": "Sans URL"},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if report.Valid != 0 || report.TotalRows != 0 {
		t.Fatalf("valid=%d rows=%d", report.Valid, report.TotalRows)
	}
}

func TestCatalogueService_IngestFromFeed(t *testing.T) {
	repo := memory.NewTournamentRepository()
	service := NewCatalogueService(repo, staticFeed{records: rawBatch()}, nil)

	report, err := service.IngestFromFeed(t.Context(), "https://dumps.internal/latest.json")
	if err != nil {
		t.Fatalf("ingest from feed: %v", err)
	}
	if report.Inserted != 2 {
		t.Fatalf("inserted = %d", report.Inserted)
	}
}

func TestCatalogueService_IngestFromFeed_Errors(t *testing.T) {
	repo := memory.NewTournamentRepository()

	if _, err := NewCatalogueService(repo, staticFeed{}, nil).IngestFromFeed(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank ref: %v", err)
	}
	if _, err := NewCatalogueService(repo, nil, nil).IngestFromFeed(t.Context(), "dump.json"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("nil loader: %v", err)
	}

	feedErr := errors.New("boom")
	if _, err := NewCatalogueService(repo, staticFeed{err: feedErr}, nil).IngestFromFeed(t.Context(), "dump.json"); !errors.Is(err, feedErr) {
		t.Fatalf("load failure: %v", err)
	}
}

func TestCatalogueService_List_NegativeLimit(t *testing.T) {
	service := NewCatalogueService(memory.NewTournamentRepository(), nil, nil)

	if _, err := service.List(t.Context(), -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v", err)
	}
}

func TestCatalogueService_ExportSnapshot_Ordering(t *testing.T) {
	repo := memory.NewTournamentRepository()
	service := NewCatalogueService(repo, nil, nil)
	generatedAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return generatedAt }

	batch := []tournament.RawRecord{
		{"name": "Sans date", "detail_url": "https://tenup.fft.fr/tournoi/111"},
		{"name": "Novembre", "detail_url": "https://tenup.fft.fr/tournoi/222", "start_date": "2025-11-12"},
		{"name": "Octobre A", "detail_url": "https://tenup.fft.fr/tournoi/333", "start_date": "2025-10-05"},
		{"name": "Octobre B", "detail_url": "https://tenup.fft.fr/tournoi/444", "start_date": "2025-10-05"},
	}
	if _, err := service.Ingest(t.Context(), batch); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	snapshot, err := service.ExportSnapshot(t.Context())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !snapshot.GeneratedAt.Equal(generatedAt) {
		t.Fatalf("generated at = %v", snapshot.GeneratedAt)
	}

	gotIDs := make([]string, 0, len(snapshot.Tournaments))
	for _, view := range snapshot.Tournaments {
		gotIDs = append(gotIDs, view.TournamentID)
	}

	// Dated rows first ascending, same-day ties by id descending, undated
	// rows last.
	wantIDs := []string{"444", "333", "222", "111"}
	for i, want := range wantIDs {
		if gotIDs[i] != want {
			t.Fatalf("order = %v, want %v", gotIDs, wantIDs)
		}
	}

	first := snapshot.Tournaments[0]
	if first.Date != first.StartDate {
		t.Fatalf("date mirror = %q, start = %q", first.Date, first.StartDate)
	}
}


