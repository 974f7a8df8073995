package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrEmptyOrder = errors.New("order must contain at least one item")
	ErrBadEmail   = errors.New("invalid email address")
)

// UnknownProductError identifies which requested id failed catalog lookup.
type UnknownProductError struct {
	ID string
}

func (e UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product id %q", e.ID)
}

// BadQuantityError reports a quantity that is not a positive integer.
type BadQuantityError struct {
	ProductID string
	Quantity  int
}

func (e BadQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %q", e.Quantity, e.ProductID)
}

// Deliberately conservative: it rejects some RFC-valid addresses rather than
// accept garbage that the payment receipt mail would bounce on.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const maxEmailLen = 254

func ValidateEmail(s string) error {
	if len(s) > maxEmailLen || !emailRe.MatchString(s) {
		return ErrBadEmail
	}
	return nil
}
