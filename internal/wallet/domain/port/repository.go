package port

import (
	"context"
	"time"

	"github.com/nestfin/nestfin/internal/wallet/domain/event"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
)

// WalletRepository persists wallet aggregates. Save uses optimistic locking
// on the aggregate version.
type WalletRepository interface {
	Save(ctx context.Context, wallet model.Wallet) error
	FindByID(ctx context.Context, id string) (model.Wallet, error)
}

// SavingsGoalRepository persists savings goals. Delete is used only for
// goals whose funds are already zero; funded goals are removed by the
// transfer executor's RemoveAfter leg.
type SavingsGoalRepository interface {
	Save(ctx context.Context, goal model.SavingsGoal) error
	FindByID(ctx context.Context, id string) (model.SavingsGoal, error)
	FindByWalletID(ctx context.Context, walletID string) ([]model.SavingsGoal, error)
	Delete(ctx context.Context, id string) error
}

// LedgerRepository appends to and reads the wallet transaction log.
type LedgerRepository interface {
	Append(ctx context.Context, entry model.LedgerEntry) error
	FindByWalletID(ctx context.Context, walletID string, since time.Time, limit int) ([]model.LedgerEntry, error)
	FindByRelatedID(ctx context.Context, walletID, relatedID string, limit int) ([]model.LedgerEntry, error)
}

// TransferExecutor applies a two-leg transfer atomically. Both legs commit
// or neither does; precondition failures surface as the typed errors on
// model.Transfer.
type TransferExecutor interface {
	Execute(ctx context.Context, transfer model.Transfer) error
}

// EventPublisher emits domain events after state changes commit.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
