package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
	"github.com/tenpadel/catalogue/internal/ingest"
	"github.com/tenpadel/catalogue/internal/platform/logging"
)

// FeedLoader produces raw record batches from the extraction layer's output
// (a JSON dump file, a directory of page dumps, or the feed endpoint).
type FeedLoader interface {
	Load(ctx context.Context, ref string) ([]tournament.RawRecord, error)
}

// Snapshot is the JSON export document mirroring the catalogue table.
type Snapshot struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Tournaments []TournamentView `json:"tournaments"`
}

// TournamentView is the serialized shape of one catalogue row. The extra
// "date" field mirrors start_date; the web layer still reads it.
type TournamentView struct {
	TournamentID    string `json:"tournament_id"`
	Name            string `json:"name"`
	Level           string `json:"level,omitempty"`
	Category        string `json:"category,omitempty"`
	ClubName        string `json:"club_name,omitempty"`
	City            string `json:"city,omitempty"`
	Region          string `json:"region,omitempty"`
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	Date            string `json:"date,omitempty"`
	DetailURL       string `json:"detail_url"`
	RegistrationURL string `json:"registration_url,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// CatalogueService runs the ingestion pipeline and serves the catalogue.
type CatalogueService struct {
	repo   tournament.Repository
	feed   FeedLoader
	logger *logging.Logger
	now    func() time.Time
}

func NewCatalogueService(repo tournament.Repository, feed FeedLoader, logger *logging.Logger) *CatalogueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CatalogueService{
		repo:   repo,
		feed:   feed,
		logger: logger,
		now:    time.Now,
	}
}

// Ingest runs one batch through normalize, validate, dedupe and the
// transactional upsert, and reports exactly what changed. Input-shape
// problems are absorbed by normalization defaults; validation rejections are
// counted per reason; identity conflicts and storage failures abort the
// whole batch.
func (s *CatalogueService) Ingest(ctx context.Context, records []tournament.RawRecord) (tournament.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogueService.Ingest")
	defer span.End()

	report := tournament.Report{
		Received:         len(records),
		RejectedByReason: make(map[tournament.RejectReason]int),
	}

	valid := make([]tournament.Tournament, 0, len(records))
	for _, raw := range records {
		candidate := ingest.Normalize(raw)
		s.logDroppedDates(ctx, raw, candidate)

		if reason, ok := ingest.Validate(candidate); !ok {
			report.RejectedByReason[reason]++
			continue
		}
		valid = append(valid, candidate)
	}
	report.Valid = len(valid)

	deduped := ingest.Dedupe(valid)

	if len(deduped) == 0 {
		s.logger.WarnContext(ctx, "no valid tournaments in batch; storage untouched",
			"received", report.Received,
			"reasons", report.RejectedByReason,
		)
	} else {
		result, err := s.repo.UpsertBatch(ctx, deduped)
		if err != nil {
			return tournament.Report{}, fmt.Errorf("upsert tournament batch: %w", err)
		}
		report.Inserted = result.Inserted
		report.Updated = result.Updated
		report.Unchanged = result.Unchanged
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return tournament.Report{}, fmt.Errorf("count tournaments after batch: %w", err)
	}
	report.TotalRows = total

	s.logger.InfoContext(ctx, "ingestion batch finished",
		"received", report.Received,
		"valid", report.Valid,
		"inserted", report.Inserted,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"rejected", report.RejectedByReason,
		"rows_after", report.TotalRows,
	)
	return report, nil
}

// IngestFromFeed loads raw records from the extraction layer's output and
// runs them through Ingest.
func (s *CatalogueService) IngestFromFeed(ctx context.Context, ref string) (tournament.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogueService.IngestFromFeed")
	defer span.End()

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return tournament.Report{}, fmt.Errorf("%w: feed reference is required", ErrInvalidInput)
	}
	if s.feed == nil {
		return tournament.Report{}, fmt.Errorf("%w: no feed loader configured", ErrDependencyUnavailable)
	}

	records, err := s.feed.Load(ctx, ref)
	if err != nil {
		return tournament.Report{}, fmt.Errorf("load feed %q: %w", ref, err)
	}
	return s.Ingest(ctx, records)
}

// List returns the catalogue in the documented read order: start_date
// ascending with unknown dates last, ties broken by identity descending.
func (s *CatalogueService) List(ctx context.Context, limit int) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogueService.List")
	defer span.End()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit cannot be negative", ErrInvalidInput)
	}
	items, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

// ExportSnapshot mirrors the whole table into the JSON export document.
func (s *CatalogueService) ExportSnapshot(ctx context.Context) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogueService.ExportSnapshot")
	defer span.End()

	items, err := s.repo.List(ctx, 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export tournaments: %w", err)
	}

	views := make([]TournamentView, 0, len(items))
	for _, item := range items {
		views = append(views, ViewFromTournament(item))
	}
	return Snapshot{GeneratedAt: s.now().UTC(), Tournaments: views}, nil
}

func ViewFromTournament(item tournament.Tournament) TournamentView {
	view := TournamentView{
		TournamentID:    item.ID,
		Name:            item.Name,
		Level:           item.Level,
		Category:        item.Category,
		ClubName:        item.ClubName,
		City:            item.City,
		Region:          item.Region,
		StartDate:       item.StartDate,
		EndDate:         item.EndDate,
		Date:            item.StartDate,
		DetailURL:       item.DetailURL,
		RegistrationURL: item.RegistrationURL,
	}
	if !item.CreatedAt.IsZero() {
		view.CreatedAt = item.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !item.UpdatedAt.IsZero() {
		view.UpdatedAt = item.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return view
}

// logDroppedDates records raw date text that did not normalize, so broken
// source formats stay diagnosable without ever guessing a value.
func (s *CatalogueService) logDroppedDates(ctx context.Context, raw tournament.RawRecord, candidate tournament.Tournament) {
	if candidate.StartDate != "" {
		return
	}
	for _, key := range []string{"start_date", "date", "dates"} {
		text, ok := raw[key].(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		s.logger.DebugContext(ctx, "unparsable date dropped from candidate",
			"field", key,
			"value", text,
			"detail_url", candidate.DetailURL,
		)
		return
	}
}
