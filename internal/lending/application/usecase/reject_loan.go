package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/domain/port"
)

// RejectLoanUseCase rejects a pending loan application.
type RejectLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewRejectLoanUseCase wires dependencies.
func NewRejectLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *RejectLoanUseCase {
	return &RejectLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute transitions the loan to REJECTED with the given reason.
func (uc *RejectLoanUseCase) Execute(
	ctx context.Context,
	req dto.RejectLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	loan, err = loan.Reject(req.Reason, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("reject loan: %w", err)
	}

	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
