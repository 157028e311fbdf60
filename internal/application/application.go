package application

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-cli/internal/domain/order"
)

// ErrInvalidInput marks malformed or out-of-range arguments rejected before
// they reach the domain.
var ErrInvalidInput = errors.New("invalid input")

// Kind is the user-facing class of a use-case failure.
type Kind string

const (
	KindNone              Kind = ""
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInternal          Kind = "error"
)

// KindOf classifies err. Every kind except KindInternal is recoverable and
// leaves state untouched.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, order.ErrNotFound):
		return KindNotFound
	case errors.Is(err, order.ErrInsufficientStock), errors.Is(err, catalog.ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrInvalidStock),
		errors.Is(err, catalog.ErrInvalidPosition),
		errors.Is(err, catalog.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidQuantity):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// Outcome is the metrics label for err.
func Outcome(err error) string {
	if k := KindOf(err); k != KindNone {
		return string(k)
	}
	return "success"
}
