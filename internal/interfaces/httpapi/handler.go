package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/tenpadel/catalogue/internal/domain/tournament"
	"github.com/tenpadel/catalogue/internal/platform/logging"
	"github.com/tenpadel/catalogue/internal/usecase"
)

const maxListLimit = 500

// Pinger reports storage reachability for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	catalogue *usecase.CatalogueService
	pinger    Pinger
	validator *validator.Validate
	logger    *logging.Logger
}

func NewHandler(catalogue *usecase.CatalogueService, pinger Pinger, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		catalogue: catalogue,
		pinger:    pinger,
		validator: validator.New(),
		logger:    logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "health check db ping failed", "error", err)
			writeError(r.Context(), w, fmt.Errorf("%w: database unreachable", usecase.ErrDependencyUnavailable))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}
	if limit == 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := h.catalogue.List(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	views := make([]usecase.TournamentView, 0, len(items))
	for _, item := range items {
		views = append(views, usecase.ViewFromTournament(item))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportSnapshot")
	defer span.End()

	snapshot, err := h.catalogue.ExportSnapshot(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// IngestTournaments is the manual trigger: records inline in the body, or a
// feed reference pointing at the extraction layer's dump output.
func (h *Handler) IngestTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestTournaments")
	defer span.End()

	var payload ingestRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: malformed request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	var report tournament.Report
	var err error
	if len(payload.Records) > 0 {
		report, err = h.catalogue.Ingest(ctx, payload.Records)
	} else {
		report, err = h.catalogue.IngestFromFeed(ctx, payload.Feed)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{OK: true, Report: report})
}
