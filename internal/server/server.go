// Package server assembles the HTTP surface: the JSON API under /api plus
// the static storefront.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// SquareConfig is the client-facing slice of the payment configuration. The
// access token stays server-side.
type SquareConfig struct {
	ApplicationID string
	LocationID    string
	Environment   string
}

// Configured reports whether the widget may be initialized at all. Missing
// ids suppress the whole payment feature.
func (c SquareConfig) Configured() bool {
	return c.ApplicationID != "" && c.LocationID != ""
}

type Handler struct {
	log    *slog.Logger
	square SquareConfig
}

// New builds the full router. catalogH, orderH and paymentH are the
// per-domain route sets; webDir is the static asset root.
func New(log *slog.Logger, square SquareConfig, catalogH, orderH, paymentH http.Handler, webDir string) http.Handler {
	h := &Handler{log: log, square: square}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Route("/api", func(api chi.Router) {
		api.Get("/config", h.getConfig)
		api.Get("/health", h.getHealth)
		api.Mount("/products", catalogH)
		api.Mount("/orders", orderH)
		api.Mount("/payment", paymentH)
	})

	r.Handle("/*", http.FileServer(http.Dir(webDir)))

	return otelhttp.NewHandler(r, "shop-server")
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"squareApplicationId": h.square.ApplicationID,
		"squareLocationId":    h.square.LocationID,
		"squareEnvironment":   h.square.Environment,
		"squareConfigured":    h.square.Configured(),
	})
}

func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":           "ok",
		"squareConfigured": h.square.Configured(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
