package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pixelframe/shop/internal/order/domain"
)

type Service struct {
	catalog ProductCatalog
}

func NewService(catalog ProductCatalog) *Service {
	return &Service{catalog: catalog}
}

// CreateOrder validates the requested items against the catalog and returns
// an order with a fresh id and a total computed from catalog prices only.
// Whatever price fields the client sent never reach this function.
func (s *Service) CreateOrder(ctx context.Context, items []domain.OrderItem, customerEmail string) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}

	if customerEmail != "" {
		if err := domain.ValidateEmail(customerEmail); err != nil {
			return domain.Order{}, err
		}
	}

	var total int64
	for _, item := range items {
		if item.Quantity < 1 {
			return domain.Order{}, domain.BadQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		p, ok := s.catalog.Get(item.ProductID)
		if !ok {
			return domain.Order{}, domain.UnknownProductError{ID: item.ProductID}
		}
		total += int64(item.Quantity) * p.PriceCents
	}

	return domain.Order{
		ID:            uuid.NewString(),
		Items:         items,
		TotalCents:    total,
		CustomerEmail: customerEmail,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
