package application

import (
	"context"

	"github.com/pixelframe/shop/internal/payment/domain"
)

// Gateway is the outbound port to the card processor.
type Gateway interface {
	CreatePayment(ctx context.Context, req GatewayRequest) (domain.Payment, error)
}

type GatewayRequest struct {
	SourceID       string
	IdempotencyKey string
	AmountCents    int64
	Currency       string
	Note           string
}
