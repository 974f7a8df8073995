package application

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/pixelframe/shop/internal/payment/domain"
)

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

type Service struct {
	log        *slog.Logger
	gateway    Gateway
	locationID string
}

// NewService wires the gateway port. An empty locationID marks the whole
// payment feature unconfigured and every Charge fails before any network call.
func NewService(log *slog.Logger, gateway Gateway, locationID string) *Service {
	return &Service{log: log, gateway: gateway, locationID: locationID}
}

func (s *Service) Configured() bool { return s.locationID != "" }

// Charge validates preconditions, mints a fresh idempotency key and forwards
// the token to the processor. The key dedupes transport-level retries of this
// one invocation at the processor; a new checkout attempt gets a new key and
// is deliberately not idempotent with earlier attempts.
func (s *Service) Charge(ctx context.Context, req domain.ChargeRequest) (domain.Payment, error) {
	if !s.Configured() {
		return domain.Payment{}, domain.ErrNotConfigured
	}
	if req.SourceID == "" {
		return domain.Payment{}, domain.ErrMissingSource
	}
	if req.AmountCents <= 0 {
		return domain.Payment{}, domain.ErrBadAmount
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	if !currencyRe.MatchString(currency) {
		return domain.Payment{}, domain.ErrBadCurrency
	}

	note := ""
	if req.OrderID != "" {
		note = "Order " + req.OrderID
	}

	key := uuid.NewString()
	payment, err := s.gateway.CreatePayment(ctx, GatewayRequest{
		SourceID:       req.SourceID,
		IdempotencyKey: key,
		AmountCents:    req.AmountCents,
		Currency:       currency,
		Note:           note,
	})
	if err != nil {
		var gwErr domain.GatewayError
		if !errors.As(err, &gwErr) {
			gwErr = domain.GatewayError{Message: err.Error()}
		}
		s.log.Warn("payment failed", "order_id", req.OrderID, "amount_cents", req.AmountCents, "err", gwErr.Message)
		return domain.Payment{}, gwErr
	}

	s.log.Info("payment captured",
		"payment_id", payment.ID,
		"status", payment.Status,
		"amount_cents", payment.AmountCents,
		"order_id", req.OrderID,
	)
	return payment, nil
}
