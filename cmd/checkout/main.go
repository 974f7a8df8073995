// Command checkout drives one headless checkout session against a running
// shop server, using Square's sandbox test card token in place of the
// browser widget. Useful for exercising the whole flow from a terminal:
//
//	checkout -server http://localhost:8080 -email jo@example.com -item photo-2=3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pixelframe/shop/internal/checkout"
	"github.com/pixelframe/shop/pkg/logging"
	"github.com/pixelframe/shop/pkg/shutdown"
)

// sandboxWidget stands in for the browser card widget. Square's sandbox
// accepts this fixed nonce as a successfully tokenized test card.
type sandboxWidget struct {
	configured bool
}

func (w *sandboxWidget) Attach(ctx context.Context) error {
	if !w.configured {
		return errors.New("gateway not configured")
	}
	return nil
}

func (w *sandboxWidget) Tokenize(ctx context.Context) (checkout.TokenResult, error) {
	return checkout.TokenResult{Status: checkout.TokenStatusOK, Token: "cnon:card-nonce-ok"}, nil
}

type itemFlags []string

func (f *itemFlags) String() string { return strings.Join(*f, ",") }

func (f *itemFlags) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var items itemFlags
	serverURL := flag.String("server", "http://localhost:8080", "shop server base URL")
	email := flag.String("email", "", "customer email for the order")
	flag.Var(&items, "item", "product to buy as id=quantity, repeatable")
	flag.Parse()

	log := logging.New()
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if len(items) == 0 || *email == "" {
		fmt.Fprintln(os.Stderr, "usage: checkout -email you@example.com -item photo-1=2 [-item ...]")
		os.Exit(2)
	}

	api := checkout.NewAPIClient(*serverURL)

	cfg, err := api.FetchConfig(ctx)
	if err != nil {
		log.Error("config fetch failed", "err", err)
		os.Exit(1)
	}

	cat, err := api.FetchCatalog(ctx)
	if err != nil {
		log.Error("catalog fetch failed", "err", err)
		os.Exit(1)
	}

	cart := checkout.NewCartState(cat)
	for _, arg := range items {
		id, qty, err := parseItem(arg)
		if err != nil {
			log.Error("bad -item flag", "value", arg, "err", err)
			os.Exit(2)
		}
		cart.Add(id)
		if qty > 1 {
			cart.SetQuantity(id, qty-1)
		}
	}
	if cart.Empty() {
		log.Error("no requested product exists in the catalog")
		os.Exit(1)
	}

	orch := checkout.NewOrchestrator(log, cart, cfg, api, api, &sandboxWidget{configured: cfg.SquareConfigured})

	if err := orch.OpenCart(); err != nil {
		log.Error("open cart failed", "err", err)
		os.Exit(1)
	}
	printCart(checkout.RenderCart(cart))

	if err := orch.BeginCheckout(ctx); err != nil {
		log.Error("checkout unavailable", "err", err, "message", orch.View().Message)
		os.Exit(1)
	}

	if err := orch.SubmitPayment(ctx, *email); err != nil {
		log.Error("payment failed", "err", err, "message", orch.View().Message)
		os.Exit(1)
	}

	view := orch.View()
	fmt.Printf("payment complete\n  order:   %s\n  payment: %s\n  charged: $%s\n", view.OrderID, view.PaymentID, cents(view.TotalCents))
	if view.ReceiptURL != "" {
		fmt.Printf("  receipt: %s\n", view.ReceiptURL)
	}
}

func parseItem(arg string) (string, int, error) {
	id, qtyStr, found := strings.Cut(arg, "=")
	if !found {
		return id, 1, nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return "", 0, fmt.Errorf("quantity must be a positive integer, got %q", qtyStr)
	}
	return id, qty, nil
}

func printCart(view checkout.CartView) {
	for _, l := range view.Lines {
		fmt.Printf("%3dx %-24s $%s\n", l.Quantity, l.Name, cents(l.SubtotalCents))
	}
	fmt.Printf("     %-24s $%s\n", "total", cents(view.TotalCents))
}

func cents(c int64) string {
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
