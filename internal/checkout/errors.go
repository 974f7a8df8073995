package checkout

import "errors"

var (
	ErrEmptyCart = errors.New("cart is empty, nothing to check out")

	// ErrPaymentsDisabled means the server reported the gateway unconfigured.
	// The widget is never attempted in this state.
	ErrPaymentsDisabled = errors.New("payments are not configured")

	// ErrWidgetUnavailable is terminal: the card widget failed to initialize
	// maxWidgetAttempts times and will not be retried.
	ErrWidgetUnavailable = errors.New("card input failed to initialize")

	ErrInvalidEmail = errors.New("enter a valid email address")

	ErrTokenization = errors.New("card tokenization did not succeed")

	IllegalTransitionError = errors.New("illegal checkout stage transition")
)
