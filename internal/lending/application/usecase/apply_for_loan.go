package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/domain/model"
	"github.com/nestfin/nestfin/internal/lending/domain/port"
)

// ApplyForLoanUseCase submits a new loan application.
type ApplyForLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewApplyForLoanUseCase wires dependencies.
func NewApplyForLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *ApplyForLoanUseCase {
	return &ApplyForLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute creates a pending loan. When the request carries no minimum
// payment, the contractual payment is derived from the annuity formula.
func (uc *ApplyForLoanUseCase) Execute(
	ctx context.Context,
	req dto.ApplyForLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Derive the minimum payment when the applicant did not supply one.
	minimumPayment := req.MinimumPayment
	if minimumPayment.IsZero() {
		var err error
		minimumPayment, err = model.MinimumPayment(req.Principal, req.AnnualInterestRate, req.TermMonths)
		if err != nil {
			return dto.LoanResponse{}, fmt.Errorf("derive minimum payment: %w", err)
		}
	}

	// 2. Create the aggregate.
	loan, err := model.NewLoan(req.WalletID, req.Principal, req.AnnualInterestRate, minimumPayment, req.TermMonths, now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
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
