package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tornbank/internal/account"
	"tornbank/internal/coordinator"
	"tornbank/internal/demo"
	"tornbank/pkg/config"
	"tornbank/pkg/errors"
	"tornbank/pkg/logger"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	fmt.Println("=========================================================")
	fmt.Println("TORNBANK - LOCKING & CANCELLATION DEMONSTRATION")
	fmt.Println("=========================================================")
	fmt.Printf("Accounts: A=%d B=%d (conservation total %d)\n", cfg.Demo.BalanceA, cfg.Demo.BalanceB, cfg.Demo.BalanceA+cfg.Demo.BalanceB)
	fmt.Println("")

	audit := logger.New(os.Stdout)

	// ---------------------------------------------------------
	// SCENARIO 1: Sequential conservation
	// ---------------------------------------------------------
	fmt.Println("--- Scenario 1: Sequential Transfers ---")
	coord := coordinator.New(account.NewPair(cfg.Demo.BalanceA, cfg.Demo.BalanceB), audit)
	res, err := demo.Sequential(coord, 3, cfg.Demo.TransferAmount)
	if err != nil {
		fmt.Printf("[FAIL] Sequential run errored: %v\n", err)
	} else if res.Conserved {
		fmt.Printf("[PASS] Total held at %d after every round.\n", res.FinalTotal)
	} else {
		fmt.Printf("[FAIL] Total drifted to %d.\n", res.FinalTotal)
	}
	fmt.Println("")

	// ---------------------------------------------------------
	// SCENARIO 2: Concurrent contention
	// ---------------------------------------------------------
	fmt.Println("--- Scenario 2: Concurrent Transfers ---")
	coord = coordinator.New(account.NewPair(cfg.Demo.BalanceA, cfg.Demo.BalanceB), audit)
	res, err = demo.Concurrent(coord, cfg.Demo.Workers, cfg.Demo.TransferAmount)
	if err != nil {
		fmt.Printf("[FAIL] Concurrent run errored: %v\n", err)
	} else if res.Conserved {
		fmt.Printf("[PASS] %d contending workers, total still %d.\n", cfg.Demo.Workers, res.FinalTotal)
	} else {
		fmt.Printf("[FAIL] Total drifted to %d under contention.\n", res.FinalTotal)
	}
	fmt.Println("")

	// ---------------------------------------------------------
	// SCENARIO 3: Cooperative cancellation
	// ---------------------------------------------------------
	fmt.Println("--- Scenario 3: Cooperative Cancellation ---")
	coord = coordinator.New(account.NewPair(cfg.Demo.BalanceA, cfg.Demo.BalanceB), audit)
	cres := demo.Cooperative(coord, cfg.Demo.TransferAmount)
	fmt.Printf("Cancelled call returned: %v\n", cres.TransferErr)
	if cres.Conserved && cres.NextErr == nil {
		fmt.Printf("[PASS] Checkpoint honored before mutation; total intact at %d.\n", cres.FinalTotal)
	} else {
		fmt.Printf("[FAIL] Pair damaged by cooperative cancel (total %d, next err %v).\n", cres.FinalTotal, cres.NextErr)
	}
	fmt.Println("")

	// ---------------------------------------------------------
	// SCENARIO 4: Forceful cancellation mid-delay
	// ---------------------------------------------------------
	fmt.Println("--- Scenario 4: Forceful Cancellation ---")
	coord = coordinator.New(account.NewPair(cfg.Demo.BalanceA, cfg.Demo.BalanceB), audit)
	cres = demo.Forceful(coord, cfg.Demo.TransferAmount, cfg.Demo.TransferDelay, 50*time.Millisecond)
	fmt.Printf("Interrupted call returned: %v\n", cres.TransferErr)
	fmt.Printf("Observed total after interrupt: %d\n", cres.FinalTotal)

	var violation *errors.InvariantViolationError
	switch {
	case cres.Conserved:
		fmt.Println("[FAIL] Invariant survived a forceful cancel; the tear did not reproduce.")
	case errors.As(cres.NextErr, &violation):
		fmt.Printf("[PASS] Torn state detected on the NEXT transfer: %v\n", violation)
	default:
		fmt.Printf("[FAIL] Torn state went undetected (next err: %v).\n", cres.NextErr)
	}
}
