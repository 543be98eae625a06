package usecase

import (
	"context"
	"fmt"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// ListGoalTransactionsUseCase pages through the ledger entries tied to one
// savings goal, newest first. Entries outlive the goal, so the history of a
// redeemed or deleted goal remains readable.
type ListGoalTransactionsUseCase struct {
	ledger port.LedgerRepository
}

// NewListGoalTransactionsUseCase wires dependencies.
func NewListGoalTransactionsUseCase(ledger port.LedgerRepository) *ListGoalTransactionsUseCase {
	return &ListGoalTransactionsUseCase{ledger: ledger}
}

// Execute returns the goal's ledger entries.
func (uc *ListGoalTransactionsUseCase) Execute(
	ctx context.Context,
	req dto.ListGoalTransactionsRequest,
) ([]dto.LedgerEntryResponse, error) {
	if req.WalletID == "" || req.GoalID == "" {
		return nil, fmt.Errorf("wallet ID and goal ID are required")
	}

	limit := req.Limit
	if limit <= 0 || limit > defaultTransactionLimit {
		limit = defaultTransactionLimit
	}

	entries, err := uc.ledger.FindByRelatedID(ctx, req.WalletID, req.GoalID, limit)
	if err != nil {
		return nil, fmt.Errorf("list goal transactions: %w", err)
	}

	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return out, nil
}
