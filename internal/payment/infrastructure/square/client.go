// Package square is a minimal client for the Square Payments API. It covers
// the single CreatePayment call this service needs and normalizes every
// failure mode (HTTP error, errors array, malformed body) to a GatewayError.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pixelframe/shop/internal/payment/application"
	"github.com/pixelframe/shop/internal/payment/domain"
)

const apiVersion = "2025-01-23"

type Config struct {
	AccessToken string
	LocationID  string
	// Environment selects the API host: "production" or "sandbox".
	Environment string
	// BaseURL overrides the environment-derived host. Used in tests.
	BaseURL string
}

type Client struct {
	log        *slog.Logger
	httpClient *http.Client
	baseURL    string
	token      string
	locationID string
}

func NewClient(log *slog.Logger, cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		if cfg.Environment == "production" {
			base = "https://connect.squareup.com"
		} else {
			base = "https://connect.squareupsandbox.com"
		}
	}
	return &Client{
		log: log,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:    base,
		token:      cfg.AccessToken,
		locationID: cfg.LocationID,
	}
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createPaymentReq struct {
	SourceID       string `json:"source_id"`
	IdempotencyKey string `json:"idempotency_key"`
	AmountMoney    money  `json:"amount_money"`
	LocationID     string `json:"location_id,omitempty"`
	Note           string `json:"note,omitempty"`
}

type createPaymentResp struct {
	Payment *struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		AmountMoney money  `json:"amount_money"`
		ReceiptURL  string `json:"receipt_url"`
	} `json:"payment"`
	Errors []apiError `json:"errors"`
}

type apiError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
}

func (e apiError) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Code
}

func (c *Client) CreatePayment(ctx context.Context, req application.GatewayRequest) (domain.Payment, error) {
	body, err := json.Marshal(createPaymentReq{
		SourceID:       req.SourceID,
		IdempotencyKey: req.IdempotencyKey,
		AmountMoney:    money{Amount: req.AmountCents, Currency: req.Currency},
		LocationID:     c.locationID,
		Note:           req.Note,
	})
	if err != nil {
		return domain.Payment{}, domain.GatewayError{Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/payments", bytes.NewReader(body))
	if err != nil {
		return domain.Payment{}, domain.GatewayError{Message: err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Square-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.Payment{}, domain.GatewayError{Message: "payment request failed: " + err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded createPaymentResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Payment{}, domain.GatewayError{
			Message: fmt.Sprintf("unreadable gateway response (HTTP %d)", resp.StatusCode),
		}
	}

	if len(decoded.Errors) > 0 {
		c.log.Warn("square rejected payment", "status", resp.StatusCode, "code", decoded.Errors[0].Code)
		return domain.Payment{}, domain.GatewayError{Message: decoded.Errors[0].message()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decoded.Payment == nil {
		return domain.Payment{}, domain.GatewayError{
			Message: fmt.Sprintf("gateway returned HTTP %d without a payment", resp.StatusCode),
		}
	}

	p := decoded.Payment
	return domain.Payment{
		ID:          p.ID,
		Status:      p.Status,
		AmountCents: p.AmountMoney.Amount,
		Currency:    p.AmountMoney.Currency,
		ReceiptURL:  p.ReceiptURL,
	}, nil
}
