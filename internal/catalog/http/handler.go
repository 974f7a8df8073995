package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelframe/shop/internal/catalog"
)

type Handler struct {
	log     *slog.Logger
	catalog *catalog.Catalog
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, c *catalog.Catalog) *Handler {
	return &Handler{
		log:     log,
		catalog: c,
		tracer:  otel.Tracer("catalog-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listProducts)
	r.Get("/{id}", h.getProduct)
	return r
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.catalog.List())
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "GetProduct")
	defer span.End()

	id := chi.URLParam(r, "id")
	p, ok := h.catalog.Get(id)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "product not found: " + id})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}
