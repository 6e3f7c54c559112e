package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/lucasmrqs/financial-football/internal/platform/ratelimit"
)

// RateLimits carries the per-endpoint limiters, so the award flow and the
// ranking poller get independent budgets.
type RateLimits struct {
	Award   *ratelimit.FixedWindow
	Ranking *ratelimit.FixedWindow
}

func NewRouter(
	handler *Handler,
	adminAPIKey string,
	limits RateLimits,
	logger *slog.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerGameRoutes(mux, handler, limits)
	registerMatchRoutes(mux, handler)
	registerAdminRoutes(mux, handler, adminAPIKey)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
