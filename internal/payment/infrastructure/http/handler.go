package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelframe/shop/internal/payment/application"
	"github.com/pixelframe/shop/internal/payment/domain"
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
		tracer:  otel.Tracer("payment-http"),
	}
}

type chargeReq struct {
	SourceID string      `json:"sourceId"`
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
	OrderID  string      `json:"orderId"`
}

type chargeResp struct {
	Success bool            `json:"success"`
	Payment *domain.Payment `json:"payment,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.charge)
	return r
}

func (h *Handler) charge(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Charge")
	defer span.End()

	var req chargeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCharge(w, http.StatusBadRequest, chargeResp{Error: "invalid request body"})
		return
	}

	// Amounts arrive as JSON numbers; 49.99 is a client bug, not half-cents.
	amount, err := req.Amount.Int64()
	if req.Amount != "" && err != nil {
		writeCharge(w, http.StatusBadRequest, chargeResp{Error: "amount must be an integer of minor currency units"})
		return
	}

	payment, err := h.service.Charge(ctx, domain.ChargeRequest{
		SourceID:    req.SourceID,
		AmountCents: amount,
		Currency:    req.Currency,
		OrderID:     req.OrderID,
	})
	if err != nil {
		writeCharge(w, statusFor(err), chargeResp{Error: err.Error()})
		return
	}

	writeCharge(w, http.StatusOK, chargeResp{Success: true, Payment: &payment})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrMissingSource),
		errors.Is(err, domain.ErrBadAmount),
		errors.Is(err, domain.ErrBadCurrency):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeCharge(w http.ResponseWriter, code int, resp chargeResp) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
