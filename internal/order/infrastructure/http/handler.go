package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelframe/shop/internal/order/application"
	"github.com/pixelframe/shop/internal/order/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

// createOrderReq is the only shape accepted over the wire. Unknown fields,
// including any client-supplied price or total, are dropped on decode.
type createOrderReq struct {
	Items         []orderItemReq `json:"items"`
	CustomerEmail string         `json:"customerEmail"`
}

type orderItemReq struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.createOrder)
	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{ProductID: it.ID, Quantity: it.Quantity})
	}

	order, err := h.service.CreateOrder(ctx, items, req.CustomerEmail)
	if err != nil {
		h.log.Warn("order rejected", "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Info("order created", "order_id", order.ID, "total_cents", order.TotalCents, "items", len(order.Items))
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(order)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
