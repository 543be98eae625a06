package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfin/nestfin/internal/lending/domain/event"
	"github.com/nestfin/nestfin/internal/lending/domain/model"
	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
	"github.com/nestfin/nestfin/pkg/testutil"
)

func newPendingLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := model.NewLoan(
		testutil.TestWalletID,
		testutil.Dec("5000"), testutil.Dec("12.5"), testutil.Dec("120"),
		48,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return loan
}

func approvedLoan(t *testing.T) model.Loan {
	t.Helper()
	loan, err := newPendingLoan(t).Approve(time.Now().UTC())
	require.NoError(t, err)
	return loan.ClearEvents()
}

func TestNewLoan(t *testing.T) {
	t.Run("creates a pending loan with balance equal to principal", func(t *testing.T) {
		loan := newPendingLoan(t)

		assert.NotEmpty(t, loan.ID())
		assert.True(t, loan.Status().Equal(valueobject.LoanStatusPending))
		testutil.AssertDecimalEqual(t, loan.Principal(), loan.RemainingBalance())
		assert.Equal(t, 1, loan.Version())

		require.Len(t, loan.DomainEvents(), 1)
		assert.Equal(t, "lending.loan.submitted", loan.DomainEvents()[0].EventType())
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		now := time.Now().UTC()

		_, err := model.NewLoan("", testutil.Dec("5000"), testutil.Dec("12"), testutil.Dec("120"), 48, now)
		testutil.AssertErrorContains(t, err, "wallet ID")

		_, err = model.NewLoan(testutil.TestWalletID, decimal.Zero, testutil.Dec("12"), testutil.Dec("120"), 48, now)
		testutil.AssertErrorContains(t, err, "principal")

		_, err = model.NewLoan(testutil.TestWalletID, testutil.Dec("5000"), testutil.Dec("-1"), testutil.Dec("120"), 48, now)
		testutil.AssertErrorContains(t, err, "interest rate")

		_, err = model.NewLoan(testutil.TestWalletID, testutil.Dec("5000"), testutil.Dec("12"), decimal.Zero, 48, now)
		testutil.AssertErrorContains(t, err, "minimum payment")

		_, err = model.NewLoan(testutil.TestWalletID, testutil.Dec("5000"), testutil.Dec("12"), testutil.Dec("120"), 0, now)
		testutil.AssertErrorContains(t, err, "term")
	})
}

func TestLoanTransitions(t *testing.T) {
	t.Run("approve emits LoanApproved", func(t *testing.T) {
		loan := newPendingLoan(t).ClearEvents()

		approved, err := loan.Approve(time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, approved.Status().Equal(valueobject.LoanStatusApproved))
		require.Len(t, approved.DomainEvents(), 1)
		evt, ok := approved.DomainEvents()[0].(event.LoanApproved)
		require.True(t, ok)
		testutil.AssertDecimalEqual(t, loan.Principal(), evt.Principal)

		// Original aggregate is untouched.
		assert.True(t, loan.Status().Equal(valueobject.LoanStatusPending))
	})

	t.Run("reject emits LoanRejected with the reason", func(t *testing.T) {
		loan := newPendingLoan(t).ClearEvents()

		rejected, err := loan.Reject("insufficient credit history", time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, rejected.Status().Equal(valueobject.LoanStatusRejected))
		require.Len(t, rejected.DomainEvents(), 1)
		evt, ok := rejected.DomainEvents()[0].(event.LoanRejected)
		require.True(t, ok)
		assert.Equal(t, "insufficient credit history", evt.Reason)
	})

	t.Run("approve is only valid from pending", func(t *testing.T) {
		loan := approvedLoan(t)
		_, err := loan.Approve(time.Now().UTC())
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("reject is only valid from pending", func(t *testing.T) {
		loan := approvedLoan(t)
		_, err := loan.Reject("too late", time.Now().UTC())
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestApplyRepayment(t *testing.T) {
	t.Run("reduces the balance by the amount", func(t *testing.T) {
		loan := approvedLoan(t)

		next, applied, err := loan.ApplyRepayment(testutil.Dec("1000"), time.Now().UTC())
		require.NoError(t, err)

		testutil.AssertDecimalEqual(t, testutil.Dec("1000"), applied)
		testutil.AssertDecimalEqual(t, testutil.Dec("4000"), next.RemainingBalance())
		assert.True(t, next.Status().Equal(valueobject.LoanStatusApproved))
	})

	t.Run("caps the applied amount at the remaining balance", func(t *testing.T) {
		loan := approvedLoan(t)

		next, applied, err := loan.ApplyRepayment(testutil.Dec("99999"), time.Now().UTC())
		require.NoError(t, err)

		testutil.AssertDecimalEqual(t, testutil.Dec("5000"), applied)
		testutil.AssertDecimalEqual(t, decimal.Zero, next.RemainingBalance())
	})

	t.Run("transitions to PAID at exactly zero balance", func(t *testing.T) {
		loan := approvedLoan(t)

		next, _, err := loan.ApplyRepayment(testutil.Dec("5000"), time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, next.Status().Equal(valueobject.LoanStatusPaid))

		types := make([]string, 0, len(next.DomainEvents()))
		for _, evt := range next.DomainEvents() {
			types = append(types, evt.EventType())
		}
		assert.Contains(t, types, "lending.loan.repayment_applied")
		assert.Contains(t, types, "lending.loan.paid_off")
	})

	t.Run("rejects repayments on non-approved loans", func(t *testing.T) {
		loan := newPendingLoan(t)
		_, _, err := loan.ApplyRepayment(testutil.Dec("100"), time.Now().UTC())
		testutil.AssertErrorContains(t, err, "approved")
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		loan := approvedLoan(t)
		_, _, err := loan.ApplyRepayment(decimal.Zero, time.Now().UTC())
		testutil.AssertErrorContains(t, err, "positive")
	})
}

func TestLoanSnapshot(t *testing.T) {
	loan := approvedLoan(t)
	snap := loan.Snapshot()

	assert.Equal(t, loan.ID(), snap.ID)
	testutil.AssertDecimalEqual(t, loan.RemainingBalance(), snap.RemainingBalance)
	testutil.AssertDecimalEqual(t, loan.AnnualInterestRate(), snap.AnnualInterestRate)
	testutil.AssertDecimalEqual(t, loan.MinimumPayment(), snap.MinimumPayment)
	assert.Equal(t, loan.TermMonths(), snap.TermMonths)
}
