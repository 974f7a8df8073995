package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configuredCfg() ClientConfig {
	return ClientConfig{
		SquareApplicationID: "app_1",
		SquareLocationID:    "loc_1",
		SquareConfigured:    true,
	}
}

func okWidget() *mockWidget {
	return &mockWidget{token: TokenResult{Status: TokenStatusOK, Token: "cnon:card-nonce-ok"}}
}

func newSession(widget *mockWidget, orders *mockOrderClient, payments *mockPaymentClient, cfg ClientConfig) (*Orchestrator, *CartState) {
	cart := NewCartState(testCatalog())
	return NewOrchestrator(discard(), cart, cfg, orders, payments, widget), cart
}

func TestCheckoutHappyPath(t *testing.T) {
	widget := okWidget()
	orders := &mockOrderClient{order: Order{OrderID: "order-1", TotalCents: 10497}}
	payments := &mockPaymentClient{payment: Payment{
		ID: "pay_1", Status: "COMPLETED", AmountCents: 10497, Currency: "USD",
		ReceiptURL: "https://squareupsandbox.com/receipt/preview/pay_1",
	}}
	orch, cart := newSession(widget, orders, payments, configuredCfg())

	cart.Add("photo-2")
	cart.SetQuantity("photo-2", 2) // 3 x 3499 = 10497

	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))
	require.NoError(t, orch.SubmitPayment(context.Background(), "jo@example.com"))

	assert.Equal(t, StageSuccess, orch.Stage())
	assert.True(t, orch.Stage().IsTerminal())
	assert.True(t, cart.Empty(), "success clears the cart unconditionally")

	require.Equal(t, 1, orders.calls)
	assert.Equal(t, []OrderItem{{ID: "photo-2", Quantity: 3}}, orders.gotItems)
	assert.Equal(t, "jo@example.com", orders.gotEmail)

	require.Equal(t, 1, payments.calls)
	assert.Equal(t, int64(10497), payments.gotAmount, "amount paid is the order's total")
	assert.Equal(t, "order-1", payments.gotOrderID)
	assert.Equal(t, "cnon:card-nonce-ok", payments.gotToken)

	view := orch.View()
	assert.Equal(t, "order-1", view.OrderID)
	assert.Equal(t, "https://squareupsandbox.com/receipt/preview/pay_1", view.ReceiptURL)
}

func TestPaymentAmountIsOrderTotalNotCartTotal(t *testing.T) {
	widget := okWidget()
	// Server total deliberately differs from the local cart total.
	orders := &mockOrderClient{order: Order{OrderID: "order-1", TotalCents: 9999}}
	payments := &mockPaymentClient{payment: Payment{ID: "pay_1"}}
	orch, cart := newSession(widget, orders, payments, configuredCfg())

	cart.Add("photo-2") // local total 3499

	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))
	require.NoError(t, orch.SubmitPayment(context.Background(), "jo@example.com"))

	assert.Equal(t, int64(9999), payments.gotAmount)
	assert.True(t, orch.View().PriceChanged, "a total mismatch is surfaced, not hidden")
}

func TestBeginCheckoutEmptyCart(t *testing.T) {
	orch, _ := newSession(okWidget(), &mockOrderClient{}, &mockPaymentClient{}, configuredCfg())

	require.NoError(t, orch.OpenCart())
	err := orch.BeginCheckout(context.Background())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StageCartReview, orch.Stage())
}

func TestUnconfiguredGatewayNeverTouchesWidget(t *testing.T) {
	widget := okWidget()
	orch, cart := newSession(widget, &mockOrderClient{}, &mockPaymentClient{}, ClientConfig{SquareConfigured: false})

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())

	err := orch.BeginCheckout(context.Background())

	assert.ErrorIs(t, err, ErrPaymentsDisabled)
	assert.Equal(t, 0, widget.attachCalls, "widget initialization must never be attempted")

	view := orch.View()
	assert.False(t, view.SubmitEnabled)
	assert.Contains(t, view.Message, "not configured")
}

func TestWidgetRetriesThenReady(t *testing.T) {
	widget := okWidget()
	widget.attachErrs = []error{errors.New("script not loaded")}
	orch, cart := newSession(widget, &mockOrderClient{}, &mockPaymentClient{}, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())

	require.NoError(t, orch.BeginCheckout(context.Background()), "a single transient failure retries automatically")
	assert.Equal(t, 2, widget.attachCalls)
	assert.True(t, orch.View().SubmitEnabled)
}

func TestWidgetFailsThreeTimesIsTerminal(t *testing.T) {
	boom := errors.New("attach failed")
	widget := okWidget()
	widget.attachErrs = []error{boom, boom, boom, boom, boom}
	orch, cart := newSession(widget, &mockOrderClient{}, &mockPaymentClient{}, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())

	err := orch.BeginCheckout(context.Background())
	assert.ErrorIs(t, err, ErrWidgetUnavailable)
	assert.Equal(t, 3, widget.attachCalls, "initialization is bounded at three attempts")

	// Re-entering checkout must not retry a terminally failed widget.
	err = orch.BeginCheckout(context.Background())
	assert.ErrorIs(t, err, ErrWidgetUnavailable)
	assert.Equal(t, 3, widget.attachCalls)

	view := orch.View()
	assert.False(t, view.SubmitEnabled)
	assert.NotEmpty(t, view.Message)
}

func TestWidgetReattachFailureConsumesBudget(t *testing.T) {
	widget := okWidget()
	orch, cart := newSession(widget, &mockOrderClient{}, &mockPaymentClient{}, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))
	require.Equal(t, 1, widget.attachCalls)

	// Second visit: the ready widget's re-attach throws, the stale instance
	// is discarded and initialization retried under the same counter.
	widget.attachErrs = []error{nil, errors.New("stale"), nil}
	err := orch.BeginCheckout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, widget.attachCalls)
	assert.True(t, orch.View().SubmitEnabled)
}

func TestSubmitValidatesEmailBeforeNetwork(t *testing.T) {
	widget := okWidget()
	orders := &mockOrderClient{}
	orch, cart := newSession(widget, orders, &mockPaymentClient{}, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))

	for _, email := range []string{"", "nope", "a@b"} {
		err := orch.SubmitPayment(context.Background(), email)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}

	assert.Equal(t, 0, orders.calls, "no network call on a client-side validation failure")
	assert.Equal(t, StageCheckout, orch.Stage())
	assert.True(t, orch.View().SubmitEnabled)
}

func TestOrderFailureReturnsToCheckout(t *testing.T) {
	widget := okWidget()
	orders := &mockOrderClient{err: errors.New("unknown product id \"photo-9\"")}
	payments := &mockPaymentClient{}
	orch, cart := newSession(widget, orders, payments, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))

	err := orch.SubmitPayment(context.Background(), "jo@example.com")
	require.Error(t, err)

	assert.Equal(t, StageCheckout, orch.Stage(), "failure is not a terminal state")
	assert.Equal(t, 0, payments.calls, "payment is never attempted after a failed step")
	assert.False(t, cart.Empty())

	view := orch.View()
	assert.True(t, view.SubmitEnabled, "submit control is re-enabled for another attempt")
	assert.NotEmpty(t, view.Message)
}

func TestTokenizeFailureAborts(t *testing.T) {
	widget := okWidget()
	widget.token = TokenResult{Status: "ERROR"}
	orders := &mockOrderClient{order: Order{OrderID: "order-1", TotalCents: 2999}}
	payments := &mockPaymentClient{}
	orch, cart := newSession(widget, orders, payments, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))

	err := orch.SubmitPayment(context.Background(), "jo@example.com")
	assert.ErrorIs(t, err, ErrTokenization)
	assert.Equal(t, 0, payments.calls)
	assert.Equal(t, StageCheckout, orch.Stage())
}

func TestPaymentFailureKeepsCart(t *testing.T) {
	widget := okWidget()
	orders := &mockOrderClient{order: Order{OrderID: "order-1", TotalCents: 2999}}
	payments := &mockPaymentClient{err: errors.New("Card declined.")}
	orch, cart := newSession(widget, orders, payments, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))

	err := orch.SubmitPayment(context.Background(), "jo@example.com")
	require.Error(t, err)

	assert.Equal(t, StageCheckout, orch.Stage())
	assert.False(t, cart.Empty(), "the cart survives a failed payment")
	assert.Contains(t, orch.View().Message, "Card declined.")
}

func TestIllegalTransitions(t *testing.T) {
	orch, cart := newSession(okWidget(), &mockOrderClient{}, &mockPaymentClient{}, configuredCfg())
	cart.Add("photo-1")

	// Checkout straight from browsing skips the cart review.
	assert.ErrorIs(t, orch.BeginCheckout(context.Background()), IllegalTransitionError)
	assert.ErrorIs(t, orch.SubmitPayment(context.Background(), "jo@example.com"), IllegalTransitionError)

	require.NoError(t, orch.OpenCart())
	assert.ErrorIs(t, orch.OpenCart(), IllegalTransitionError)
}

func TestSuccessIsTerminal(t *testing.T) {
	widget := okWidget()
	orders := &mockOrderClient{order: Order{OrderID: "order-1", TotalCents: 2999}}
	payments := &mockPaymentClient{payment: Payment{ID: "pay_1"}}
	orch, cart := newSession(widget, orders, payments, configuredCfg())

	cart.Add("photo-1")
	require.NoError(t, orch.OpenCart())
	require.NoError(t, orch.BeginCheckout(context.Background()))
	require.NoError(t, orch.SubmitPayment(context.Background(), "jo@example.com"))

	assert.ErrorIs(t, orch.OpenCart(), IllegalTransitionError)
	assert.ErrorIs(t, orch.BeginCheckout(context.Background()), IllegalTransitionError)
}
