package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/domain/port"
	walletmodel "github.com/nestfin/nestfin/internal/wallet/domain/model"
	walletport "github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// RepayLoanUseCase moves money from the borrower's wallet onto an approved
// loan. The wallet debit and the loan balance reduction commit atomically via
// the transfer executor; an insufficient balance aborts both legs.
type RepayLoanUseCase struct {
	loanRepo  port.LoanRepository
	transfers walletport.TransferExecutor
	ledger    walletport.LedgerRepository
	publisher port.EventPublisher
}

// NewRepayLoanUseCase wires dependencies.
func NewRepayLoanUseCase(
	loanRepo port.LoanRepository,
	transfers walletport.TransferExecutor,
	ledger walletport.LedgerRepository,
	publisher port.EventPublisher,
) *RepayLoanUseCase {
	return &RepayLoanUseCase{
		loanRepo:  loanRepo,
		transfers: transfers,
		ledger:    ledger,
		publisher: publisher,
	}
}

// Execute applies a repayment. The applied amount is capped at the remaining
// balance so a final payment never overdraws the wallet by the excess.
func (uc *RepayLoanUseCase) Execute(
	ctx context.Context,
	req dto.RepayLoanRequest,
) (dto.RepaymentResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Apply the repayment to the aggregate. This validates status and
	// amount and caps the applied amount at the remaining balance.
	loan, applied, err := loan.ApplyRepayment(req.Amount, now)
	if err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("apply repayment: %w", err)
	}

	// 3. Move the money atomically. The executor repeats the balance
	// preconditions inside the storage write, so both the wallet debit and
	// the loan reduction commit together or not at all.
	transfer := walletmodel.Transfer{
		Debit: walletmodel.Leg{
			Entity: walletmodel.EntityWallet,
			Key:    loan.WalletID(),
			Amount: applied,
		},
		Credit: walletmodel.Leg{
			Entity: walletmodel.EntityLoan,
			Key:    loan.ID(),
			Amount: applied,
		},
	}
	if err := uc.transfers.Execute(ctx, transfer); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("execute transfer: %w", err)
	}

	// 4. Record the movement in the wallet ledger.
	entry := walletmodel.NewLedgerEntry(
		loan.WalletID(), walletmodel.EntryLoanRepayment, applied,
		nil, loan.ID(), fmt.Sprintf("repayment on loan %s", loan.ID()), now,
	)
	if err := uc.ledger.Append(ctx, entry); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("append ledger entry: %w", err)
	}

	// 5. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.RepaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.RepaymentResponse{
		LoanID:           loan.ID(),
		WalletID:         loan.WalletID(),
		AmountApplied:    applied,
		RemainingBalance: loan.RemainingBalance(),
		LoanStatus:       loan.Status().String(),
	}, nil
}
