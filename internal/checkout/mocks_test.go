package checkout

import (
	"context"
	"io"
	"log/slog"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockWidget scripts Attach outcomes per call via attachErrs; calls beyond
// the script succeed.
type mockWidget struct {
	attachErrs  []error
	attachCalls int

	token       TokenResult
	tokenizeErr error
}

func (m *mockWidget) Attach(_ context.Context) error {
	i := m.attachCalls
	m.attachCalls++
	if i < len(m.attachErrs) {
		return m.attachErrs[i]
	}
	return nil
}

func (m *mockWidget) Tokenize(_ context.Context) (TokenResult, error) {
	return m.token, m.tokenizeErr
}

type mockOrderClient struct {
	calls    int
	gotItems []OrderItem
	gotEmail string

	order Order
	err   error
}

func (m *mockOrderClient) CreateOrder(_ context.Context, items []OrderItem, customerEmail string) (Order, error) {
	m.calls++
	m.gotItems = items
	m.gotEmail = customerEmail
	return m.order, m.err
}

type mockPaymentClient struct {
	calls      int
	gotToken   string
	gotAmount  int64
	gotOrderID string

	payment Payment
	err     error
}

func (m *mockPaymentClient) Pay(_ context.Context, token string, amountCents int64, currency, orderID string) (Payment, error) {
	m.calls++
	m.gotToken = token
	m.gotAmount = amountCents
	m.gotOrderID = orderID
	return m.payment, m.err
}
