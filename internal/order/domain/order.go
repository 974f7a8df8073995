package domain

import "time"

// Order is the server's answer to a checkout request. It is never persisted:
// it lives only in the response, and the client echoes the id and total back
// on the payment call. A retried request mints a fresh id.
type Order struct {
	ID            string      `json:"orderId"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"total"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}
