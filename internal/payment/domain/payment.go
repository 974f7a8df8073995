package domain

// Payment is the normalized result of a captured charge. Ephemeral: it is
// written to the response and forgotten.
type Payment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	ReceiptURL  string `json:"receiptUrl,omitempty"`
}

// ChargeRequest carries a single-use card token from the client widget plus
// the server-computed amount. OrderID is a free-text reference only; it
// travels to the processor in the payment note.
type ChargeRequest struct {
	SourceID    string
	AmountCents int64
	Currency    string
	OrderID     string
}
