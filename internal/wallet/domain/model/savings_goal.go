package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/wallet/domain/event"
)

// ErrGoalNotComplete is returned when a redemption is attempted before the
// goal's target amount has been reached.
var ErrGoalNotComplete = errors.New("savings goal has not reached its target")

// SavingsGoal is a named sub-balance of a wallet. Funds move between the
// wallet and the goal only through the atomic transfer executor; the
// aggregate itself tracks state for reads and completeness checks.
type SavingsGoal struct {
	id            string
	walletID      string
	name          string
	targetAmount  decimal.Decimal
	currentAmount decimal.Decimal
	createdAt     time.Time
	domainEvents  []event.DomainEvent
}

// NewSavingsGoal creates an empty goal belonging to a wallet.
func NewSavingsGoal(walletID, name string, targetAmount decimal.Decimal, now time.Time) (SavingsGoal, error) {
	if walletID == "" {
		return SavingsGoal{}, errors.New("wallet ID is required")
	}
	if name == "" {
		return SavingsGoal{}, errors.New("goal name is required")
	}
	if !targetAmount.IsPositive() {
		return SavingsGoal{}, errors.New("target amount must be positive")
	}

	id := uuid.New().String()
	g := SavingsGoal{
		id:            id,
		walletID:      walletID,
		name:          name,
		targetAmount:  targetAmount,
		currentAmount: decimal.Zero,
		createdAt:     now,
	}
	g.domainEvents = append(g.domainEvents, event.NewGoalCreated(id, walletID, name, targetAmount))
	return g, nil
}

// ReconstructSavingsGoal rebuilds a SavingsGoal from persistence.
func ReconstructSavingsGoal(
	id, walletID, name string,
	targetAmount, currentAmount decimal.Decimal,
	createdAt time.Time,
) SavingsGoal {
	return SavingsGoal{
		id:            id,
		walletID:      walletID,
		name:          name,
		targetAmount:  targetAmount,
		currentAmount: currentAmount,
		createdAt:     createdAt,
	}
}

// IsComplete reports whether the saved amount has reached the target.
func (g SavingsGoal) IsComplete() bool {
	return g.currentAmount.GreaterThanOrEqual(g.targetAmount)
}

// BelongsTo reports whether the goal is owned by the given wallet.
func (g SavingsGoal) BelongsTo(walletID string) bool {
	return g.walletID == walletID
}

func (g SavingsGoal) ID() string                      { return g.id }
func (g SavingsGoal) WalletID() string                { return g.walletID }
func (g SavingsGoal) Name() string                    { return g.name }
func (g SavingsGoal) TargetAmount() decimal.Decimal   { return g.targetAmount }
func (g SavingsGoal) CurrentAmount() decimal.Decimal  { return g.currentAmount }
func (g SavingsGoal) CreatedAt() time.Time            { return g.createdAt }
func (g SavingsGoal) DomainEvents() []event.DomainEvent { return g.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (g SavingsGoal) ClearEvents() SavingsGoal {
	next := g
	next.domainEvents = nil
	return next
}
