package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfin/nestfin/internal/lending/domain/model"
	"github.com/nestfin/nestfin/pkg/testutil"
)

func TestMinimumPayment(t *testing.T) {
	t.Run("standard annuity payment", func(t *testing.T) {
		pmt, err := model.MinimumPayment(testutil.Dec("1200"), testutil.Dec("12"), 24)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, testutil.Dec("56.49"), pmt)
	})

	t.Run("zero rate falls back to straight-line split", func(t *testing.T) {
		pmt, err := model.MinimumPayment(testutil.Dec("1200"), decimal.Zero, 24)
		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, testutil.Dec("50"), pmt)
	})

	t.Run("annuity payment always exceeds straight-line for positive rates", func(t *testing.T) {
		pmt, err := model.MinimumPayment(testutil.Dec("10000"), testutil.Dec("7.5"), 60)
		require.NoError(t, err)
		straightLine := testutil.Dec("10000").Div(decimal.NewFromInt(60))
		assert.True(t, pmt.GreaterThan(straightLine))
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		_, err := model.MinimumPayment(decimal.Zero, testutil.Dec("12"), 24)
		testutil.AssertErrorContains(t, err, "principal")
	})

	t.Run("rejects non-positive term", func(t *testing.T) {
		_, err := model.MinimumPayment(testutil.Dec("1000"), testutil.Dec("12"), 0)
		testutil.AssertErrorContains(t, err, "term")
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := model.MinimumPayment(testutil.Dec("1000"), testutil.Dec("-5"), 24)
		testutil.AssertErrorContains(t, err, "interest rate")
	})
}

func TestProjectPayoff(t *testing.T) {
	t.Run("standard amortizing projection", func(t *testing.T) {
		proj, err := model.ProjectPayoff(testutil.Dec("4000"), testutil.Dec("10"), testutil.Dec("200"))
		require.NoError(t, err)

		assert.Equal(t, 22, proj.Months)
		// N = 21.9696...; interest = PMT*N - P.
		diff := proj.InterestPaid.Sub(testutil.Dec("393.92")).Abs()
		assert.True(t, diff.LessThanOrEqual(testutil.Dec("0.01")),
			"interest %s not within a cent of 393.92", proj.InterestPaid)
	})

	t.Run("zero rate divides principal by payment", func(t *testing.T) {
		proj, err := model.ProjectPayoff(testutil.Dec("1000"), decimal.Zero, testutil.Dec("300"))
		require.NoError(t, err)

		assert.Equal(t, 4, proj.Months)
		testutil.AssertDecimalEqual(t, decimal.Zero, proj.InterestPaid)
	})

	t.Run("payment below monthly interest yields the never-amortizes sentinel", func(t *testing.T) {
		// $10,000 at 24% accrues $200/month; $150 never touches principal.
		proj, err := model.ProjectPayoff(testutil.Dec("10000"), testutil.Dec("24"), testutil.Dec("150"))
		require.NoError(t, err)

		assert.Equal(t, 999, proj.Months)
		testutil.AssertDecimalEqual(t, testutil.Dec("199800.00"), proj.InterestPaid)
	})

	t.Run("payment exactly at monthly interest also hits the sentinel", func(t *testing.T) {
		proj, err := model.ProjectPayoff(testutil.Dec("10000"), testutil.Dec("24"), testutil.Dec("200"))
		require.NoError(t, err)
		assert.Equal(t, 999, proj.Months)
	})

	t.Run("rejects non-positive inputs", func(t *testing.T) {
		_, err := model.ProjectPayoff(decimal.Zero, testutil.Dec("10"), testutil.Dec("100"))
		assert.Error(t, err)

		_, err = model.ProjectPayoff(testutil.Dec("1000"), testutil.Dec("10"), decimal.Zero)
		assert.Error(t, err)
	})
}
