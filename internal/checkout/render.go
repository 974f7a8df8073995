package checkout

import (
	"net/url"
	"strings"
)

// The render layer maps session state to plain view structs. No I/O: a UI
// (DOM, terminal, test) applies them however it likes.

type CartLineView struct {
	ProductID     string
	Name          string
	Quantity      int
	UnitCents     int64
	SubtotalCents int64
}

type CartView struct {
	Lines      []CartLineView
	TotalCents int64
	Empty      bool
}

func RenderCart(c *CartState) CartView {
	lines := c.Lines()
	view := CartView{Empty: len(lines) == 0}
	for _, l := range lines {
		view.Lines = append(view.Lines, CartLineView{
			ProductID:     l.Product.ID,
			Name:          l.Product.Name,
			Quantity:      l.Quantity,
			UnitCents:     l.Product.PriceCents,
			SubtotalCents: int64(l.Quantity) * l.Product.PriceCents,
		})
		view.TotalCents += int64(l.Quantity) * l.Product.PriceCents
	}
	return view
}

type CheckoutView struct {
	Stage         Stage
	Lines         []CartLineView
	TotalCents    int64
	Message       string
	SubmitEnabled bool
	PriceChanged  bool

	// Success-only fields.
	OrderID   string
	PaymentID string
	// ReceiptURL is set only when the gateway's URL passes the trusted-host
	// check; otherwise no link is rendered.
	ReceiptURL string
}

// View renders the current session. Pure with respect to session state.
func (o *Orchestrator) View() CheckoutView {
	view := CheckoutView{
		Stage:         o.stage,
		Message:       o.message,
		SubmitEnabled: o.submitOK,
		PriceChanged:  o.priceChanged,
	}

	switch o.stage {
	case StageCartReview:
		cart := RenderCart(o.cart)
		view.Lines = cart.Lines
		view.TotalCents = cart.TotalCents
	case StageCheckout, StagePaying:
		for _, l := range o.snap.lines {
			view.Lines = append(view.Lines, CartLineView{
				ProductID:     l.Product.ID,
				Name:          l.Product.Name,
				Quantity:      l.Quantity,
				UnitCents:     l.Product.PriceCents,
				SubtotalCents: int64(l.Quantity) * l.Product.PriceCents,
			})
		}
		view.TotalCents = o.snap.totalCents
	case StageSuccess:
		if o.receipt != nil {
			view.OrderID = o.receipt.OrderID
			view.PaymentID = o.receipt.Payment.ID
			view.TotalCents = o.receipt.TotalCents
			if trustedReceiptURL(o.receipt.Payment.ReceiptURL) {
				view.ReceiptURL = o.receipt.Payment.ReceiptURL
			}
		}
	}
	return view
}

var receiptHosts = []string{"squareup.com", "squareupsandbox.com"}

// trustedReceiptURL accepts only http(s) links whose hostname is one of the
// processor's receipt domains or a subdomain of one.
func trustedReceiptURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range receiptHosts {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
