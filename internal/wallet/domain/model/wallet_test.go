package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfin/nestfin/internal/wallet/domain/event"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/pkg/money"
	"github.com/nestfin/nestfin/pkg/testutil"
)

func usd(t *testing.T, amount string) money.Money {
	t.Helper()
	m, err := money.NewFromString(amount, "USD")
	require.NoError(t, err)
	return m
}

func TestNewWallet(t *testing.T) {
	t.Run("starts with a zero balance", func(t *testing.T) {
		w, err := model.NewWallet("Alice", time.Now().UTC())
		require.NoError(t, err)

		assert.NotEmpty(t, w.ID())
		assert.Equal(t, "Alice", w.OwnerName())
		assert.True(t, w.Balance().IsZero())
		assert.Equal(t, 1, w.Version())

		require.Len(t, w.DomainEvents(), 1)
		assert.Equal(t, "wallet.created", w.DomainEvents()[0].EventType())
	})

	t.Run("requires an owner name", func(t *testing.T) {
		_, err := model.NewWallet("", time.Now().UTC())
		testutil.AssertErrorContains(t, err, "owner name")
	})
}

func TestWalletCredit(t *testing.T) {
	now := time.Now().UTC()

	t.Run("adds to the balance and emits WalletCredited", func(t *testing.T) {
		w, err := model.NewWallet("Alice", now)
		require.NoError(t, err)
		w = w.ClearEvents()

		next, err := w.Credit(usd(t, "150.25"), now)
		require.NoError(t, err)

		assert.True(t, next.Balance().Equal(usd(t, "150.25")))
		require.Len(t, next.DomainEvents(), 1)
		evt, ok := next.DomainEvents()[0].(event.WalletCredited)
		require.True(t, ok)
		testutil.AssertDecimalEqual(t, testutil.Dec("150.25"), evt.Amount)
		testutil.AssertDecimalEqual(t, testutil.Dec("150.25"), evt.BalanceAfter)

		// Original aggregate is untouched.
		assert.True(t, w.Balance().IsZero())
		assert.Empty(t, w.DomainEvents())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		w, err := model.NewWallet("Alice", now)
		require.NoError(t, err)

		_, err = w.Credit(money.Zero(money.USD), now)
		testutil.AssertErrorContains(t, err, "positive")
	})
}

func TestWalletDebit(t *testing.T) {
	now := time.Now().UTC()

	funded := func(t *testing.T, amount string) model.Wallet {
		t.Helper()
		w, err := model.NewWallet("Alice", now)
		require.NoError(t, err)
		w, err = w.Credit(usd(t, amount), now)
		require.NoError(t, err)
		return w.ClearEvents()
	}

	t.Run("subtracts from the balance and emits WalletDebited", func(t *testing.T) {
		w := funded(t, "100")

		next, err := w.Debit(usd(t, "40"), now)
		require.NoError(t, err)

		assert.True(t, next.Balance().Equal(usd(t, "60")))
		require.Len(t, next.DomainEvents(), 1)
		assert.Equal(t, "wallet.debited", next.DomainEvents()[0].EventType())
	})

	t.Run("allows debiting the full balance", func(t *testing.T) {
		w := funded(t, "100")

		next, err := w.Debit(usd(t, "100"), now)
		require.NoError(t, err)
		assert.True(t, next.Balance().IsZero())
	})

	t.Run("returns ErrInsufficientFunds on overdraw", func(t *testing.T) {
		w := funded(t, "100")

		_, err := w.Debit(usd(t, "100.01"), now)
		assert.ErrorIs(t, err, model.ErrInsufficientFunds)
		assert.True(t, w.Balance().Equal(usd(t, "100")))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		w := funded(t, "100")

		_, err := w.Debit(money.Zero(money.USD), now)
		testutil.AssertErrorContains(t, err, "positive")
	})
}
