package usecase

import (
	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/domain/model"
)

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:                 loan.ID(),
		WalletID:           loan.WalletID(),
		Principal:          loan.Principal(),
		RemainingBalance:   loan.RemainingBalance(),
		AnnualInterestRate: loan.AnnualInterestRate(),
		MinimumPayment:     loan.MinimumPayment(),
		TermMonths:         loan.TermMonths(),
		Status:             loan.Status().String(),
		CreatedAt:          loan.CreatedAt(),
		UpdatedAt:          loan.UpdatedAt(),
	}
}
