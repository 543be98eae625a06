package port

import (
	"context"
	"time"

	"github.com/nestfin/nestfin/internal/lending/domain/event"
	"github.com/nestfin/nestfin/internal/lending/domain/model"
	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	// FindByWalletID returns a wallet's loans, newest first. A zero status
	// matches all statuses.
	FindByWalletID(ctx context.Context, walletID string, status valueobject.LoanStatus) ([]model.Loan, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Plan cache port
// ---------------------------------------------------------------------------

// PlanCache stores assembled repayment plans keyed by wallet and budget so
// that repeated what-if requests skip the simulation.
type PlanCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
