package usecase

import (
	"context"
	"fmt"

	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/domain/port"
	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
)

// ListLoansUseCase lists a wallet's loans, optionally filtered by status.
type ListLoansUseCase struct {
	loanRepo port.LoanRepository
}

// NewListLoansUseCase wires dependencies.
func NewListLoansUseCase(loanRepo port.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{loanRepo: loanRepo}
}

// Execute returns the wallet's loans. An empty status matches all statuses.
func (uc *ListLoansUseCase) Execute(
	ctx context.Context,
	req dto.ListLoansRequest,
) ([]dto.LoanResponse, error) {
	if req.WalletID == "" {
		return nil, fmt.Errorf("wallet ID is required")
	}

	var status valueobject.LoanStatus
	if req.Status != "" {
		var err error
		status, err = valueobject.NewLoanStatus(req.Status)
		if err != nil {
			return nil, fmt.Errorf("parse status: %w", err)
		}
	}

	loans, err := uc.loanRepo.FindByWalletID(ctx, req.WalletID, status)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	out := make([]dto.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, toLoanResponse(loan))
	}
	return out, nil
}
