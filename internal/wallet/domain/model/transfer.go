package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Atomic transfer contract
// ---------------------------------------------------------------------------

// EntityKind identifies a balance-bearing entity a transfer leg can touch.
type EntityKind string

const (
	EntityWallet      EntityKind = "wallet"
	EntitySavingsGoal EntityKind = "savings_goal"
	EntityLoan        EntityKind = "loan"
)

// Typed abort reasons. Callers branch on these to surface distinct
// client-facing errors; none of them indicates a system fault.
var (
	// ErrInsufficientFunds means the debit leg's balance precondition failed.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTargetNotFound means a leg referenced an entity that does not exist.
	ErrTargetNotFound = errors.New("transfer target not found")

	// ErrOwnershipMismatch means a leg's owner precondition failed: the
	// entity exists but belongs to a different wallet.
	ErrOwnershipMismatch = errors.New("entity does not belong to this wallet")
)

// Leg is one side of an atomic transfer. The debit leg subtracts Amount from
// the entity's balance guarded by a balance >= Amount precondition; the
// credit leg adds Amount guarded by existence (crediting a loan reduces its
// remaining debt instead).
//
// Preconditions are enforced inside the storage write itself, not by a prior
// read, so there is no window between check and apply.
type Leg struct {
	Entity EntityKind
	Key    string
	Amount decimal.Decimal

	// OwnerWalletID, when non-empty, adds an equality precondition on the
	// entity's owning wallet.
	OwnerWalletID string

	// RemoveAfter deletes the entity once the leg is applied. Used when a
	// savings goal is redeemed or dissolved.
	RemoveAfter bool
}

// Transfer is an all-or-nothing pair of legs. If either leg's precondition
// fails, neither side takes effect.
type Transfer struct {
	Debit  Leg
	Credit Leg
}

// Validate checks the structural invariants of a transfer before execution.
func (t Transfer) Validate() error {
	for side, leg := range map[string]Leg{"debit": t.Debit, "credit": t.Credit} {
		if leg.Key == "" {
			return fmt.Errorf("%s leg: entity key is required", side)
		}
		switch leg.Entity {
		case EntityWallet, EntitySavingsGoal, EntityLoan:
		default:
			return fmt.Errorf("%s leg: unknown entity kind %q", side, leg.Entity)
		}
		if !leg.Amount.IsPositive() {
			return fmt.Errorf("%s leg: amount must be positive", side)
		}
	}
	if !t.Debit.Amount.Equal(t.Credit.Amount) {
		return errors.New("debit and credit amounts must match")
	}
	return nil
}
