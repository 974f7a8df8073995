package checkout

import (
	"context"
	"log/slog"
	"regexp"
)

// Client-side mirror of the server's email check. The server re-validates;
// this one only exists to fail fast before any network call.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// snapshot is the cart as it looked when checkout was entered. It is not
// re-synced if the cart changes afterwards; the order total returned by the
// server is the only number that reaches payment.
type snapshot struct {
	lines      []CartLine
	totalCents int64
}

// Receipt is what the success view is built from.
type Receipt struct {
	OrderID    string
	Payment    Payment
	TotalCents int64
}

// Orchestrator owns one checkout session end to end. All state lives here;
// there are no package-level variables. Not safe for concurrent use: it
// models a single-threaded UI controller.
type Orchestrator struct {
	log      *slog.Logger
	cart     *CartState
	orders   OrderClient
	payments PaymentClient
	widget   Widget

	stage        Stage
	widgetState  widgetState
	snap         snapshot
	message      string
	submitOK     bool
	priceChanged bool
	receipt      *Receipt
}

func NewOrchestrator(log *slog.Logger, cart *CartState, cfg ClientConfig, orders OrderClient, payments PaymentClient, widget Widget) *Orchestrator {
	o := &Orchestrator{
		log:      log,
		cart:     cart,
		orders:   orders,
		payments: payments,
		widget:   widget,
		stage:    StageBrowsing,
	}
	if !cfg.SquareConfigured {
		o.widgetState.phase = WidgetDisabled
		o.message = "Payments are not configured on this server. Checkout is unavailable."
	}
	return o
}

func (o *Orchestrator) Stage() Stage { return o.stage }

func (o *Orchestrator) Cart() *CartState { return o.cart }

// OpenCart moves Browsing -> CartReview. Render-only, no side effects.
func (o *Orchestrator) OpenCart() error {
	if !canTransition(o.stage, StageCartReview) {
		return IllegalTransitionError
	}
	o.stage = StageCartReview
	return nil
}

// CloseCart returns to browsing from the cart view.
func (o *Orchestrator) CloseCart() error {
	if !canTransition(o.stage, StageBrowsing) {
		return IllegalTransitionError
	}
	o.stage = StageBrowsing
	return nil
}

// BeginCheckout enters the checkout form. Requires a non-empty cart, takes
// the line/total snapshot and initializes the card widget with a bounded
// retry. Widget exhaustion or a disabled gateway still lands in
// StageCheckout, with the submit control off and an explanatory message.
func (o *Orchestrator) BeginCheckout(ctx context.Context) error {
	if !canTransition(o.stage, StageCheckout) {
		return IllegalTransitionError
	}
	if o.cart.Empty() {
		o.message = "Your cart is empty."
		return ErrEmptyCart
	}

	o.stage = StageCheckout
	o.snap = snapshot{lines: o.cart.Lines(), totalCents: o.cart.TotalCents()}
	o.message = ""
	o.submitOK = false

	if err := o.widgetState.ensure(ctx, o.widget); err != nil {
		switch err {
		case ErrPaymentsDisabled:
			o.message = "Payments are not configured on this server. Checkout is unavailable."
		default:
			o.message = "The card form could not be loaded. Please reload the page to try again."
		}
		o.log.Warn("card widget unavailable", "phase", string(o.widgetState.phase), "err", err)
		return err
	}

	o.submitOK = true
	return nil
}

// SubmitPayment runs the paying sequence: create the order, tokenize the
// card, then charge the order's server-computed total. Any failure returns
// the session to StageCheckout with an inline message and the submit control
// re-enabled. Success clears the cart and is terminal.
func (o *Orchestrator) SubmitPayment(ctx context.Context, customerEmail string) error {
	if o.stage != StageCheckout {
		return IllegalTransitionError
	}
	if !o.submitOK {
		return ErrWidgetUnavailable
	}
	if customerEmail == "" || len(customerEmail) > 254 || !emailRe.MatchString(customerEmail) {
		o.message = "Enter a valid email address."
		return ErrInvalidEmail
	}

	o.stage = StagePaying
	o.message = ""
	o.submitOK = false

	items := make([]OrderItem, 0, len(o.snap.lines))
	for _, l := range o.snap.lines {
		items = append(items, OrderItem{ID: l.Product.ID, Quantity: l.Quantity})
	}

	order, err := o.orders.CreateOrder(ctx, items, customerEmail)
	if err != nil {
		return o.failPayment("We couldn't create your order: "+err.Error(), err)
	}
	if order.TotalCents != o.snap.totalCents {
		// Catalog prices moved between page load and checkout. Surface it
		// instead of silently swapping the number.
		o.priceChanged = true
		o.log.Warn("order total differs from cart snapshot",
			"cart_cents", o.snap.totalCents, "order_cents", order.TotalCents)
	}

	tok, err := o.widget.Tokenize(ctx)
	if err != nil {
		return o.failPayment("Card entry failed: "+err.Error(), err)
	}
	if tok.Status != TokenStatusOK {
		return o.failPayment("Card entry failed with status "+tok.Status+".", ErrTokenization)
	}

	// The amount is the order's authoritative total, never the local cart
	// total.
	payment, err := o.payments.Pay(ctx, tok.Token, order.TotalCents, "USD", order.OrderID)
	if err != nil {
		return o.failPayment("Payment failed: "+err.Error(), err)
	}

	o.cart.Clear()
	o.stage = StageSuccess
	o.receipt = &Receipt{OrderID: order.OrderID, Payment: payment, TotalCents: order.TotalCents}
	o.log.Info("checkout complete", "order_id", order.OrderID, "payment_id", payment.ID)
	return nil
}

func (o *Orchestrator) failPayment(message string, err error) error {
	o.stage = StageCheckout
	o.message = message
	o.submitOK = true
	o.log.Warn("checkout attempt failed", "err", err)
	return err
}
