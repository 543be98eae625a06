package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfin/nestfin/pkg/money"
)

func TestNewCurrency(t *testing.T) {
	t.Run("accepts valid ISO 4217 codes", func(t *testing.T) {
		c, err := money.NewCurrency("ZAR")
		require.NoError(t, err)
		assert.Equal(t, "ZAR", c.Code())
	})

	t.Run("rejects lowercase codes", func(t *testing.T) {
		_, err := money.NewCurrency("usd")
		assert.Error(t, err)
	})

	t.Run("rejects codes of wrong length", func(t *testing.T) {
		_, err := money.NewCurrency("US")
		assert.Error(t, err)
	})
}

func TestNewFromString(t *testing.T) {
	t.Run("parses a valid amount", func(t *testing.T) {
		m, err := money.NewFromString("100.50", "USD")
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("100.50")))
		assert.Equal(t, "USD", m.Currency().Code())
	})

	t.Run("rejects a malformed amount", func(t *testing.T) {
		_, err := money.NewFromString("not-a-number", "USD")
		assert.Error(t, err)
	})

	t.Run("rejects an invalid currency", func(t *testing.T) {
		_, err := money.NewFromString("100.50", "DOLLARS")
		assert.Error(t, err)
	})
}

func TestArithmetic(t *testing.T) {
	usd50 := money.New(decimal.NewFromInt(50), money.USD)
	usd30 := money.New(decimal.NewFromInt(30), money.USD)
	eur30 := money.New(decimal.NewFromInt(30), money.MustCurrency("EUR"))

	t.Run("adds same-currency amounts", func(t *testing.T) {
		sum, err := usd50.Add(usd30)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(80)))
	})

	t.Run("subtracts same-currency amounts", func(t *testing.T) {
		diff, err := usd50.Subtract(usd30)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(20)))
	})

	t.Run("subtraction below zero yields a negative amount", func(t *testing.T) {
		diff, err := usd30.Subtract(usd50)
		require.NoError(t, err)
		assert.True(t, diff.IsNegative())
	})

	t.Run("rejects cross-currency addition", func(t *testing.T) {
		_, err := usd50.Add(eur30)
		assert.Error(t, err)
	})

	t.Run("compares same-currency amounts", func(t *testing.T) {
		ok, err := usd50.GreaterThanOrEqual(usd30)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = usd30.GreaterThanOrEqual(usd50)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects cross-currency comparison", func(t *testing.T) {
		_, err := usd50.GreaterThanOrEqual(eur30)
		assert.Error(t, err)
	})
}

func TestRound(t *testing.T) {
	m := money.New(decimal.RequireFromString("10.005"), money.USD)
	assert.Equal(t, "10.01 USD", m.Round().String())

	m = money.New(decimal.RequireFromString("10.004"), money.USD)
	assert.Equal(t, "10.00 USD", m.Round().String())
}
