package httpapi

import (
	"net/http"

	"github.com/tenpadel/catalogue/internal/platform/logging"
)

func NewRouter(handler *Handler, adminToken string, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /api/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /api/tournaments/export.json", handler.ExportSnapshot)
	mux.Handle("POST /admin/ingest", RequireAdminToken(adminToken, http.HandlerFunc(handler.IngestTournaments)))

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec)
				writeInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
