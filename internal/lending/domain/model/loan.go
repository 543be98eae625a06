package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/lending/domain/event"
	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// ErrLoanNotFound is returned when no loan exists for the requested ID.
var ErrLoanNotFound = errors.New("loan not found")

// Loan is an immutable aggregate. Mutations return a new copy.
type Loan struct {
	id                 string
	walletID           string
	principal          decimal.Decimal
	remainingBalance   decimal.Decimal
	annualInterestRate decimal.Decimal // percentage
	minimumPayment     decimal.Decimal
	termMonths         int
	status             valueobject.LoanStatus
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	domainEvents       []event.DomainEvent
}

// NewLoan creates a loan application in PENDING status. The remaining balance
// starts equal to the principal.
func NewLoan(
	walletID string,
	principal, annualInterestRate, minimumPayment decimal.Decimal,
	termMonths int,
	now time.Time,
) (Loan, error) {
	if walletID == "" {
		return Loan{}, errors.New("wallet ID is required")
	}
	if !principal.IsPositive() {
		return Loan{}, errors.New("principal must be positive")
	}
	if annualInterestRate.IsNegative() {
		return Loan{}, errors.New("interest rate must not be negative")
	}
	if !minimumPayment.IsPositive() {
		return Loan{}, errors.New("minimum payment must be positive")
	}
	if termMonths <= 0 {
		return Loan{}, errors.New("term months must be positive")
	}

	id := uuid.New().String()
	loan := Loan{
		id:                 id,
		walletID:           walletID,
		principal:          principal,
		remainingBalance:   principal,
		annualInterestRate: annualInterestRate,
		minimumPayment:     minimumPayment,
		termMonths:         termMonths,
		status:             valueobject.LoanStatusPending,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanApplicationSubmitted(
		id, walletID, principal, annualInterestRate, minimumPayment, termMonths,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, walletID string,
	principal, remainingBalance, annualInterestRate, minimumPayment decimal.Decimal,
	termMonths int,
	status valueobject.LoanStatus,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                 id,
		walletID:           walletID,
		principal:          principal,
		remainingBalance:   remainingBalance,
		annualInterestRate: annualInterestRate,
		minimumPayment:     minimumPayment,
		termMonths:         termMonths,
		status:             status,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Approve transitions PENDING -> APPROVED and emits LoanApproved, which the
// wallet consumer uses to credit the disbursed principal.
func (l Loan) Approve(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusApproved
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApproved(l.id, l.walletID, l.principal))
	return next, nil
}

// Reject transitions PENDING -> REJECTED.
func (l Loan) Reject(reason string, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusPending) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusRejected
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRejected(l.id, l.walletID, reason))
	return next, nil
}

// ApplyRepayment reduces the remaining balance by amount, capping at the
// balance, and transitions to PAID when the balance reaches zero. Returns the
// amount actually applied alongside the updated aggregate.
func (l Loan) ApplyRepayment(amount decimal.Decimal, now time.Time) (Loan, decimal.Decimal, error) {
	if !l.status.Equal(valueobject.LoanStatusApproved) {
		return l, decimal.Zero, errors.New("repayments can only be applied to approved loans")
	}
	if !amount.IsPositive() {
		return l, decimal.Zero, errors.New("repayment amount must be positive")
	}

	applied := decimal.Min(amount, l.remainingBalance)

	next := l
	next.remainingBalance = l.remainingBalance.Sub(applied)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRepaymentApplied(
		l.id, l.walletID, applied, next.remainingBalance,
	))

	if next.remainingBalance.LessThanOrEqual(decimal.Zero) {
		next.remainingBalance = decimal.Zero
		next.status = valueobject.LoanStatusPaid
		next.domainEvents = append(next.domainEvents, event.NewLoanPaidOff(l.id, l.walletID))
	}

	return next, applied, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                          { return l.id }
func (l Loan) WalletID() string                    { return l.walletID }
func (l Loan) Principal() decimal.Decimal          { return l.principal }
func (l Loan) RemainingBalance() decimal.Decimal   { return l.remainingBalance }
func (l Loan) AnnualInterestRate() decimal.Decimal { return l.annualInterestRate }
func (l Loan) MinimumPayment() decimal.Decimal     { return l.minimumPayment }
func (l Loan) TermMonths() int                     { return l.termMonths }
func (l Loan) Status() valueobject.LoanStatus      { return l.status }
func (l Loan) Version() int                        { return l.version }
func (l Loan) CreatedAt() time.Time                { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent   { return l.domainEvents }

// Snapshot returns the simulator's view of this loan.
func (l Loan) Snapshot() LoanSnapshot {
	return LoanSnapshot{
		ID:                 l.id,
		Principal:          l.principal,
		RemainingBalance:   l.remainingBalance,
		AnnualInterestRate: l.annualInterestRate,
		MinimumPayment:     l.minimumPayment,
		TermMonths:         l.termMonths,
	}
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
