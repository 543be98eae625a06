package event

import (
	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Loan lifecycle events
// ---------------------------------------------------------------------------

// LoanApplicationSubmitted is raised when a new loan application enters the
// system in PENDING status.
type LoanApplicationSubmitted struct {
	events.BaseEvent
	WalletID           string          `json:"wallet_id"`
	Principal          decimal.Decimal `json:"principal"`
	AnnualInterestRate decimal.Decimal `json:"annual_interest_rate"`
	MinimumPayment     decimal.Decimal `json:"minimum_payment"`
	TermMonths         int             `json:"term_months"`
}

func NewLoanApplicationSubmitted(
	loanID, walletID string,
	principal, annualInterestRate, minimumPayment decimal.Decimal,
	termMonths int,
) LoanApplicationSubmitted {
	return LoanApplicationSubmitted{
		BaseEvent:          events.NewBaseEvent("lending.loan.submitted", loanID, "Loan"),
		WalletID:           walletID,
		Principal:          principal,
		AnnualInterestRate: annualInterestRate,
		MinimumPayment:     minimumPayment,
		TermMonths:         termMonths,
	}
}

// LoanApproved is raised when a pending application is approved. The wallet
// consumer reacts by crediting the disbursed principal.
type LoanApproved struct {
	events.BaseEvent
	WalletID  string          `json:"wallet_id"`
	Principal decimal.Decimal `json:"principal"`
}

func NewLoanApproved(loanID, walletID string, principal decimal.Decimal) LoanApproved {
	return LoanApproved{
		BaseEvent: events.NewBaseEvent("lending.loan.approved", loanID, "Loan"),
		WalletID:  walletID,
		Principal: principal,
	}
}

// LoanRejected is raised when a pending application is rejected.
type LoanRejected struct {
	events.BaseEvent
	WalletID string `json:"wallet_id"`
	Reason   string `json:"reason"`
}

func NewLoanRejected(loanID, walletID, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent: events.NewBaseEvent("lending.loan.rejected", loanID, "Loan"),
		WalletID:  walletID,
		Reason:    reason,
	}
}

// LoanRepaymentApplied is raised when a repayment reduces the balance.
type LoanRepaymentApplied struct {
	events.BaseEvent
	WalletID         string          `json:"wallet_id"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

func NewLoanRepaymentApplied(
	loanID, walletID string,
	amount, remainingBalance decimal.Decimal,
) LoanRepaymentApplied {
	return LoanRepaymentApplied{
		BaseEvent:        events.NewBaseEvent("lending.loan.repayment_applied", loanID, "Loan"),
		WalletID:         walletID,
		Amount:           amount,
		RemainingBalance: remainingBalance,
	}
}

// LoanPaidOff is raised when the remaining balance crosses zero.
type LoanPaidOff struct {
	events.BaseEvent
	WalletID string `json:"wallet_id"`
}

func NewLoanPaidOff(loanID, walletID string) LoanPaidOff {
	return LoanPaidOff{
		BaseEvent: events.NewBaseEvent("lending.loan.paid_off", loanID, "Loan"),
		WalletID:  walletID,
	}
}
