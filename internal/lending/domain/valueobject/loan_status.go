package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending  = "PENDING"
	loanStatusApproved = "APPROVED"
	loanStatusRejected = "REJECTED"
	loanStatusPaid     = "PAID"
)

var (
	LoanStatusPending  = LoanStatus{value: loanStatusPending}
	LoanStatusApproved = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected = LoanStatus{value: loanStatusRejected}
	LoanStatusPaid     = LoanStatus{value: loanStatusPaid}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:  LoanStatusPending,
	loanStatusApproved: LoanStatusApproved,
	loanStatusRejected: LoanStatusRejected,
	loanStatusPaid:     LoanStatusPaid,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid loan status transition")
)
