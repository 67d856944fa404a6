// ==============================================================================
// ERRORS PACKAGE - pkg/errors/errors.go
// ==============================================================================

// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidAccountID = errors.New("invalid account id")
)

// InvariantViolationError reports that the observed balances no longer sum to
// the conservation total recorded at construction. It means an earlier
// mutation was interrupted partway through (or the pair was mis-constructed);
// the pair is tainted and nothing repairs it automatically.
type InvariantViolationError struct {
	BalanceA int64
	BalanceB int64
	Expected int64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf(
		"conservation invariant violated: balance_a=%d balance_b=%d sum=%d expected=%d",
		e.BalanceA, e.BalanceB, e.BalanceA+e.BalanceB, e.Expected,
	)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
