package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ApplyForLoanRequest carries the data needed to submit a new loan application.
// MinimumPayment is optional; when zero it is derived from the annuity formula.
type ApplyForLoanRequest struct {
	WalletID           string          `json:"wallet_id"`
	Principal          decimal.Decimal `json:"principal"`
	AnnualInterestRate decimal.Decimal `json:"annual_interest_rate"`
	MinimumPayment     decimal.Decimal `json:"minimum_payment,omitempty"`
	TermMonths         int             `json:"term_months"`
}

// ApproveLoanRequest identifies a pending loan to approve.
type ApproveLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// RejectLoanRequest identifies a pending loan to reject.
type RejectLoanRequest struct {
	LoanID string `json:"loan_id"`
	Reason string `json:"reason"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// ListLoansRequest identifies a wallet whose loans to list, optionally
// filtered by status.
type ListLoansRequest struct {
	WalletID string `json:"wallet_id"`
	Status   string `json:"status,omitempty"`
}

// RepayLoanRequest carries the data for a loan repayment from the borrower's
// wallet.
type RepayLoanRequest struct {
	LoanID string          `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
}

// CalculatePlanRequest asks for a payoff plan across a wallet's approved loans.
type CalculatePlanRequest struct {
	WalletID      string          `json:"wallet_id"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                 string          `json:"id"`
	WalletID           string          `json:"wallet_id"`
	Principal          decimal.Decimal `json:"principal"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	AnnualInterestRate decimal.Decimal `json:"annual_interest_rate"`
	MinimumPayment     decimal.Decimal `json:"minimum_payment"`
	TermMonths         int             `json:"term_months"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// RepaymentResponse is the external representation of a repayment result.
type RepaymentResponse struct {
	LoanID           string          `json:"loan_id"`
	WalletID         string          `json:"wallet_id"`
	AmountApplied    decimal.Decimal `json:"amount_applied"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	LoanStatus       string          `json:"loan_status"`
}

// PayoffEventResponse records the month in which one loan was retired.
type PayoffEventResponse struct {
	Month  int    `json:"month"`
	LoanID string `json:"loan_id"`
}

// StrategyResultResponse is the outcome of one strategy's simulation.
type StrategyResultResponse struct {
	Strategy          string                `json:"strategy"`
	MonthsToPayoff    int                   `json:"months_to_payoff"`
	TotalInterestPaid decimal.Decimal       `json:"total_interest_paid"`
	FirstTarget       string                `json:"first_target"`
	PayoffLog         []PayoffEventResponse `json:"payoff_log"`
}

// PlanSummaryResponse aggregates the inputs the plan was computed from.
type PlanSummaryResponse struct {
	TotalLoans          int             `json:"total_loans"`
	MonthlyBudget       decimal.Decimal `json:"monthly_budget"`
	TotalMinimumPayment decimal.Decimal `json:"total_minimum_payment"`
	ExtraPayment        decimal.Decimal `json:"extra_payment"`
}

// ProjectionResponse is the closed-form consolidated payoff estimate.
type ProjectionResponse struct {
	Months       int             `json:"months"`
	InterestPaid decimal.Decimal `json:"interest_paid"`
}

// PlanResponse compares the avalanche and snowball strategies for one wallet.
type PlanResponse struct {
	WalletID     string                 `json:"wallet_id"`
	Summary      PlanSummaryResponse    `json:"summary"`
	Avalanche    StrategyResultResponse `json:"avalanche"`
	Snowball     StrategyResultResponse `json:"snowball"`
	Consolidated ProjectionResponse     `json:"consolidated_projection"`
	CachedAt     time.Time              `json:"cached_at"`
}
