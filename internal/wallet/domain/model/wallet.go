package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nestfin/nestfin/internal/wallet/domain/event"
	"github.com/nestfin/nestfin/pkg/money"
)

// ---------------------------------------------------------------------------
// Wallet aggregate root
// ---------------------------------------------------------------------------

// Wallet is an immutable aggregate. Mutations return a new copy.
//
// The balance must never go negative. The aggregate rejects overdrawing
// debits, and the storage layer repeats the check as a conditional-write
// precondition so concurrent debits cannot race past it.
type Wallet struct {
	id           string
	ownerName    string
	balance      money.Money
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewWallet creates a wallet with a zero USD balance.
func NewWallet(ownerName string, now time.Time) (Wallet, error) {
	if ownerName == "" {
		return Wallet{}, errors.New("owner name is required")
	}

	id := uuid.New().String()
	w := Wallet{
		id:        id,
		ownerName: ownerName,
		balance:   money.Zero(money.USD),
		version:   1,
		createdAt: now,
		updatedAt: now,
	}
	w.domainEvents = append(w.domainEvents, event.NewWalletCreated(id, ownerName))
	return w, nil
}

// ReconstructWallet rebuilds a Wallet aggregate from persistence.
func ReconstructWallet(
	id, ownerName string,
	balance money.Money,
	version int,
	createdAt, updatedAt time.Time,
) Wallet {
	return Wallet{
		id:        id,
		ownerName: ownerName,
		balance:   balance,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Credit adds amount to the balance and emits WalletCredited.
func (w Wallet) Credit(amount money.Money, now time.Time) (Wallet, error) {
	if !amount.IsPositive() {
		return w, errors.New("credit amount must be positive")
	}

	balance, err := w.balance.Add(amount)
	if err != nil {
		return w, fmt.Errorf("credit wallet: %w", err)
	}

	next := w
	next.balance = balance
	next.updatedAt = now
	next.domainEvents = copyEvents(w.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewWalletCredited(w.id, amount.Amount(), balance.Amount()))
	return next, nil
}

// Debit subtracts amount from the balance and emits WalletDebited.
// Returns ErrInsufficientFunds when the balance does not cover the amount.
func (w Wallet) Debit(amount money.Money, now time.Time) (Wallet, error) {
	if !amount.IsPositive() {
		return w, errors.New("debit amount must be positive")
	}

	covered, err := w.balance.GreaterThanOrEqual(amount)
	if err != nil {
		return w, fmt.Errorf("debit wallet: %w", err)
	}
	if !covered {
		return w, ErrInsufficientFunds
	}

	balance, err := w.balance.Subtract(amount)
	if err != nil {
		return w, fmt.Errorf("debit wallet: %w", err)
	}

	next := w
	next.balance = balance
	next.updatedAt = now
	next.domainEvents = copyEvents(w.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewWalletDebited(w.id, amount.Amount(), balance.Amount()))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (w Wallet) ID() string                        { return w.id }
func (w Wallet) OwnerName() string                 { return w.ownerName }
func (w Wallet) Balance() money.Money              { return w.balance }
func (w Wallet) Version() int                      { return w.version }
func (w Wallet) CreatedAt() time.Time              { return w.createdAt }
func (w Wallet) UpdatedAt() time.Time              { return w.updatedAt }
func (w Wallet) DomainEvents() []event.DomainEvent { return w.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (w Wallet) ClearEvents() Wallet {
	next := w
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
