package usecase

import (
	"context"
	"fmt"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// defaultTransactionLimit bounds unpaginated ledger reads.
const defaultTransactionLimit = 100

// ListTransactionsUseCase pages through a wallet's ledger, newest first.
type ListTransactionsUseCase struct {
	ledger port.LedgerRepository
}

// NewListTransactionsUseCase wires dependencies.
func NewListTransactionsUseCase(ledger port.LedgerRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{ledger: ledger}
}

// Execute returns the wallet's ledger entries.
func (uc *ListTransactionsUseCase) Execute(
	ctx context.Context,
	req dto.ListTransactionsRequest,
) ([]dto.LedgerEntryResponse, error) {
	if req.WalletID == "" {
		return nil, fmt.Errorf("wallet ID is required")
	}

	limit := req.Limit
	if limit <= 0 || limit > defaultTransactionLimit {
		limit = defaultTransactionLimit
	}

	entries, err := uc.ledger.FindByWalletID(ctx, req.WalletID, req.Since, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return out, nil
}
