// ==============================================================================
// ACCOUNT PAIR - internal/account/account.go
// ==============================================================================
package account

import (
	"context"
	"time"

	"tornbank/pkg/errors"
)

// AccountID selects one of the two linked accounts.
type AccountID int

const (
	AccountA AccountID = 1
	AccountB AccountID = 2
)

// Balances is the result payload of a completed transfer.
type Balances struct {
	A int64 `json:"balance_a"`
	B int64 `json:"balance_b"`
}

// Pair holds two linked balances and the conservation total recorded at
// construction. The balances must sum to the total at every point where no
// mutation is in progress. Nothing restores the total once a mutation is
// torn partway through.
//
// Pair does no locking of its own. All access, reads included, goes through
// a Coordinator so intermediate states are never observed.
type Pair struct {
	total    int64
	balanceA int64
	balanceB int64
}

// NewPair creates a pair whose conservation total is the sum of the initial
// balances.
func NewPair(balanceA, balanceB int64) *Pair {
	return &Pair{
		total:    balanceA + balanceB,
		balanceA: balanceA,
		balanceB: balanceB,
	}
}

// NewPairWithTotal records the given conservation total as-is, even when it
// disagrees with the actual balances. Used to exercise detection of an
// already-corrupted pair.
func NewPairWithTotal(balanceA, balanceB, total int64) *Pair {
	return &Pair{
		total:    total,
		balanceA: balanceA,
		balanceB: balanceB,
	}
}

// Balance returns the balance of one account.
func (p *Pair) Balance(id AccountID) (int64, error) {
	switch id {
	case AccountA:
		return p.balanceA, nil
	case AccountB:
		return p.balanceB, nil
	default:
		return 0, errors.ErrInvalidAccountID
	}
}

// TotalBalance returns the sum of both balances.
func (p *Pair) TotalBalance() int64 {
	return p.balanceA + p.balanceB
}

// Transfer moves amount from the given account to the other one, suspending
// for delay between the debit and the credit.
//
// Cancellation is honored cooperatively at exactly one checkpoint, before
// any balance is touched; there is no rollback, so that is the only point
// where backing out is safe. A context cancelled later, during the delay,
// interrupts the suspended call instead: Transfer returns immediately with
// the debit committed and the credit never performed, leaving the pair torn.
// Only the next Transfer notices, via InvariantViolationError.
func (p *Pair) Transfer(ctx context.Context, from AccountID, amount int64, delay time.Duration) (Balances, error) {
	if err := ctx.Err(); err != nil {
		return Balances{}, err
	}

	if total := p.balanceA + p.balanceB; total != p.total {
		return Balances{}, &errors.InvariantViolationError{
			BalanceA: p.balanceA,
			BalanceB: p.balanceB,
			Expected: p.total,
		}
	}

	if from != AccountA && from != AccountB {
		return Balances{}, errors.ErrInvalidAccountID
	}

	p.debit(from, amount)

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			// Forceful termination of the suspended call. The debit above
			// is already committed; the credit below never runs.
			return Balances{}, ctx.Err()
		}
	}

	p.credit(other(from), amount)

	return Balances{A: p.balanceA, B: p.balanceB}, nil
}

func (p *Pair) debit(id AccountID, amount int64) {
	if id == AccountA {
		p.balanceA -= amount
	} else {
		p.balanceB -= amount
	}
}

func (p *Pair) credit(id AccountID, amount int64) {
	if id == AccountA {
		p.balanceA += amount
	} else {
		p.balanceB += amount
	}
}

func other(id AccountID) AccountID {
	if id == AccountA {
		return AccountB
	}
	return AccountA
}
