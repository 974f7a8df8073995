package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pixelframe/shop/internal/catalog"
)

// APIClient consumes the shop's JSON API. It implements ConfigClient,
// OrderClient and PaymentClient for a headless orchestrator run.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *APIClient) FetchConfig(ctx context.Context) (ClientConfig, error) {
	var cfg ClientConfig
	if err := c.getJSON(ctx, "/api/config", &cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// FetchCatalog pulls the product list and builds a local catalog to back the
// cart's product lookups.
func (c *APIClient) FetchCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var products []catalog.Product
	if err := c.getJSON(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	return catalog.New(products), nil
}

func (c *APIClient) CreateOrder(ctx context.Context, items []OrderItem, customerEmail string) (Order, error) {
	body := map[string]any{"items": items}
	if customerEmail != "" {
		body["customerEmail"] = customerEmail
	}

	var order Order
	if err := c.postJSON(ctx, "/api/orders", body, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (c *APIClient) Pay(ctx context.Context, token string, amountCents int64, currency, orderID string) (Payment, error) {
	body := map[string]any{
		"sourceId": token,
		"amount":   amountCents,
		"currency": currency,
		"orderId":  orderID,
	}

	var resp struct {
		Success bool     `json:"success"`
		Payment *Payment `json:"payment"`
		Error   string   `json:"error"`
	}
	if err := c.postJSON(ctx, "/api/payment", body, &resp); err != nil {
		return Payment{}, err
	}
	if !resp.Success || resp.Payment == nil {
		if resp.Error == "" {
			resp.Error = "payment did not succeed"
		}
		return Payment{}, fmt.Errorf("%s", resp.Error)
	}
	return *resp.Payment, nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *APIClient) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("%s: HTTP %d", req.URL.Path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
