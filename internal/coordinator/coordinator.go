// ==============================================================================
// TRANSFER COORDINATOR - internal/coordinator/coordinator.go
// ==============================================================================
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tornbank/internal/account"
	"tornbank/pkg/logger"
)

// Coordinator owns the mutual-exclusion boundary around one account.Pair.
// At most one caller is inside any Pair operation at a time; everyone else
// blocks until the holder releases.
type Coordinator struct {
	mu    sync.Mutex
	pair  *account.Pair
	audit logger.Logger
}

func New(pair *account.Pair, audit logger.Logger) *Coordinator {
	return &Coordinator{
		pair:  pair,
		audit: audit,
	}
}

// Balance returns one account's balance, serialized against in-flight
// transfers so a torn intermediate state is never observed.
func (c *Coordinator) Balance(id account.AccountID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pair.Balance(id)
}

// TotalBalance returns the sum of both balances, serialized the same way.
func (c *Coordinator) TotalBalance() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pair.TotalBalance()
}

// Transfer runs one mutation against the pair, logging around the critical
// section: a "requested" line before contending for the lock, an "acquired"
// line once inside, and a "released" line on the way out. The released line
// is written before the unlock so the audit stream reflects true, strictly
// alternating acquisition order.
func (c *Coordinator) Transfer(ctx context.Context, from account.AccountID, amount int64, delay time.Duration) (account.Balances, error) {
	callID := uuid.New()

	c.audit.Append(fmt.Sprintf("transfer requested call=%s from=%d amount=%d", callID, from, amount))

	c.mu.Lock()
	c.audit.Append(fmt.Sprintf("lock acquired call=%s", callID))
	defer func() {
		// Runs on every exit path, errors and cancellation included, so a
		// torn pair never also becomes a deadlocked one.
		c.audit.Append(fmt.Sprintf("lock released call=%s", callID))
		c.mu.Unlock()
	}()

	return c.pair.Transfer(ctx, from, amount, delay)
}
