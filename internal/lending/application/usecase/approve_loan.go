package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/domain/port"
)

// ApproveLoanUseCase approves a pending loan application. The wallet context
// listens for the LoanApproved event and credits the disbursed principal.
type ApproveLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewApproveLoanUseCase wires dependencies.
func NewApproveLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *ApproveLoanUseCase {
	return &ApproveLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute transitions the loan to APPROVED.
func (uc *ApproveLoanUseCase) Execute(
	ctx context.Context,
	req dto.ApproveLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Transition.
	loan, err = loan.Approve(now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("approve loan: %w", err)
	}

	// 3. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
