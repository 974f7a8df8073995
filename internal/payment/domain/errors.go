package domain

import "errors"

var (
	// ErrNotConfigured means payment credentials are absent. Fatal to the
	// payment feature; no network call is ever attempted in this state.
	ErrNotConfigured = errors.New("payment gateway is not configured")

	ErrMissingSource = errors.New("missing payment source token")
	ErrBadAmount     = errors.New("amount must be a positive integer of minor currency units")
	ErrBadCurrency   = errors.New("currency must be a 3-letter uppercase code")
)

// GatewayError is any failure reported by (or on the way to) the external
// processor, normalized to a single message for the caller.
type GatewayError struct {
	Message string
}

func (e GatewayError) Error() string { return e.Message }
