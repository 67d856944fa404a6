// ==============================================================================
// DEMO SCENARIOS - internal/demo/demo.go
// ==============================================================================

// Package demo drives the cancellation demonstration scenarios against a
// live coordinator. The same runners back cmd/tornbank and the test suite.
package demo

import (
	"context"
	"sync"
	"time"

	"tornbank/internal/account"
	"tornbank/internal/coordinator"
	"tornbank/pkg/errors"
)

// Result summarizes a scenario with no cancellation involved.
type Result struct {
	FinalTotal int64
	Conserved  bool
}

// CancelResult summarizes a cancellation scenario.
type CancelResult struct {
	TransferErr error // what the cancelled call itself returned
	FinalTotal  int64
	Conserved   bool
	NextErr     error // what the next transfer on the same pair returned
}

// Sequential runs complementary transfer rounds (A->B then B->A) and checks
// conservation after every call.
func Sequential(coord *coordinator.Coordinator, rounds int, amount int64) (Result, error) {
	ctx := context.Background()
	expected := coord.TotalBalance()
	conserved := true

	for i := 0; i < rounds; i++ {
		if _, err := coord.Transfer(ctx, account.AccountA, amount, 0); err != nil {
			return Result{}, errors.Wrap(err, "transfer A->B")
		}
		if coord.TotalBalance() != expected {
			conserved = false
		}
		if _, err := coord.Transfer(ctx, account.AccountB, amount, 0); err != nil {
			return Result{}, errors.Wrap(err, "transfer B->A")
		}
		if coord.TotalBalance() != expected {
			conserved = false
		}
	}

	return Result{FinalTotal: coord.TotalBalance(), Conserved: conserved}, nil
}

// Concurrent fires workers goroutines at the same pair, half transferring
// each way, and checks that contention alone never breaks conservation.
func Concurrent(coord *coordinator.Coordinator, workers int, amount int64) (Result, error) {
	ctx := context.Background()
	expected := coord.TotalBalance()

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		from := account.AccountA
		if i%2 == 1 {
			from = account.AccountB
		}
		wg.Add(1)
		go func(from account.AccountID) {
			defer wg.Done()
			if _, err := coord.Transfer(ctx, from, amount, 0); err != nil {
				errs <- err
			}
		}(from)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		return Result{}, errors.Wrap(err, "concurrent transfer")
	}

	total := coord.TotalBalance()
	return Result{FinalTotal: total, Conserved: total == expected}, nil
}

// Cooperative cancels the context before the transfer reaches its
// checkpoint. The pair is never touched: the invariant survives and the
// follow-up transfer succeeds.
func Cooperative(coord *coordinator.Coordinator, amount int64) CancelResult {
	expected := coord.TotalBalance()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := coord.Transfer(ctx, account.AccountA, amount, 0)

	total := coord.TotalBalance()
	_, next := coord.Transfer(context.Background(), account.AccountA, amount, 0)

	return CancelResult{
		TransferErr: err,
		FinalTotal:  total,
		Conserved:   total == expected,
		NextErr:     next,
	}
}

// Forceful starts a transfer that parks in its delay, waits out grace, then
// cancels mid-delay. The debit has committed by then and the credit never
// runs, so the reported total is short by amount and the follow-up transfer
// fails with InvariantViolationError — the delayed detection of the tear.
func Forceful(coord *coordinator.Coordinator, amount int64, delay, grace time.Duration) CancelResult {
	expected := coord.TotalBalance()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := coord.Transfer(ctx, account.AccountA, amount, delay)
		done <- err
	}()

	// The debit is straight-line code right after lock acquisition; by the
	// end of the grace period the call is parked in its delay.
	time.Sleep(grace)
	cancel()
	err := <-done

	total := coord.TotalBalance()
	_, next := coord.Transfer(context.Background(), account.AccountA, amount, 0)

	return CancelResult{
		TransferErr: err,
		FinalTotal:  total,
		Conserved:   total == expected,
		NextErr:     next,
	}
}
