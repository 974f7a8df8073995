package checkout

import "context"

// Wire shapes for the shop API, as seen from the client side.

type ClientConfig struct {
	SquareApplicationID string `json:"squareApplicationId"`
	SquareLocationID    string `json:"squareLocationId"`
	SquareEnvironment   string `json:"squareEnvironment"`
	SquareConfigured    bool   `json:"squareConfigured"`
}

type OrderItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	OrderID       string      `json:"orderId"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"total"`
	CustomerEmail string      `json:"customerEmail"`
}

type Payment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	ReceiptURL  string `json:"receiptUrl"`
}

type ConfigClient interface {
	FetchConfig(ctx context.Context) (ClientConfig, error)
}

type OrderClient interface {
	CreateOrder(ctx context.Context, items []OrderItem, customerEmail string) (Order, error)
}

type PaymentClient interface {
	Pay(ctx context.Context, token string, amountCents int64, currency, orderID string) (Payment, error)
}
