package checkout

import "context"

// Widget is the embedded card-input surface. Attach prepares it for use and
// may fail transiently; Tokenize exchanges the entered card for a single-use
// token. Raw card data never passes through this package.
type Widget interface {
	Attach(ctx context.Context) error
	Tokenize(ctx context.Context) (TokenResult, error)
}

type TokenResult struct {
	Status string
	Token  string
}

const TokenStatusOK = "OK"

type WidgetPhase string

const (
	WidgetUninitialized WidgetPhase = "UNINITIALIZED"
	WidgetAttempting    WidgetPhase = "ATTEMPTING"
	WidgetReady         WidgetPhase = "READY"
	WidgetFailed        WidgetPhase = "FAILED"
	// WidgetDisabled: gateway unconfigured, initialization never attempted.
	WidgetDisabled WidgetPhase = "DISABLED"
)

const maxWidgetAttempts = 3

// widgetState tracks bounded initialization. The attempt counter spans
// checkout re-entries: a re-attach failure of a previously ready widget
// consumes an attempt from the same budget.
type widgetState struct {
	phase    WidgetPhase
	attempts int
}

// ensure drives the state machine to READY or to the terminal FAILED /
// DISABLED phases. Once FAILED it never touches the widget again.
func (s *widgetState) ensure(ctx context.Context, w Widget) error {
	switch s.phase {
	case WidgetDisabled:
		return ErrPaymentsDisabled
	case WidgetFailed:
		return ErrWidgetUnavailable
	case WidgetReady:
		// Reuse the attached instance; a failed re-attach discards it and
		// falls through to the bounded retry loop below.
		if err := w.Attach(ctx); err == nil {
			return nil
		}
		s.phase = WidgetUninitialized
	}

	for s.attempts < maxWidgetAttempts {
		s.phase = WidgetAttempting
		s.attempts++
		if err := w.Attach(ctx); err != nil {
			continue
		}
		s.phase = WidgetReady
		return nil
	}

	s.phase = WidgetFailed
	return ErrWidgetUnavailable
}
