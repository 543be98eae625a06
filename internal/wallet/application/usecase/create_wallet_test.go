package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/application/usecase"
	"github.com/nestfin/nestfin/internal/wallet/domain/event"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/pkg/money"
	"github.com/nestfin/nestfin/pkg/testutil"
)

// --- Mocks ---

type mockWalletRepository struct {
	saveFunc     func(ctx context.Context, wallet model.Wallet) error
	findByIDFunc func(ctx context.Context, id string) (model.Wallet, error)
	savedWallets []model.Wallet
}

func (m *mockWalletRepository) Save(ctx context.Context, wallet model.Wallet) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, wallet)
	}
	m.savedWallets = append(m.savedWallets, wallet)
	return nil
}

func (m *mockWalletRepository) FindByID(ctx context.Context, id string) (model.Wallet, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Wallet{}, fmt.Errorf("wallet not found")
}

type mockGoalRepository struct {
	saveFunc           func(ctx context.Context, goal model.SavingsGoal) error
	findByIDFunc       func(ctx context.Context, id string) (model.SavingsGoal, error)
	findByWalletIDFunc func(ctx context.Context, walletID string) ([]model.SavingsGoal, error)
	deleteFunc         func(ctx context.Context, id string) error
	savedGoals         []model.SavingsGoal
	deletedIDs         []string
}

func (m *mockGoalRepository) Save(ctx context.Context, goal model.SavingsGoal) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, goal)
	}
	m.savedGoals = append(m.savedGoals, goal)
	return nil
}

func (m *mockGoalRepository) FindByID(ctx context.Context, id string) (model.SavingsGoal, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.SavingsGoal{}, fmt.Errorf("goal not found")
}

func (m *mockGoalRepository) FindByWalletID(ctx context.Context, walletID string) ([]model.SavingsGoal, error) {
	if m.findByWalletIDFunc != nil {
		return m.findByWalletIDFunc(ctx, walletID)
	}
	return nil, nil
}

func (m *mockGoalRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

type mockLedgerRepository struct {
	appendFunc func(ctx context.Context, entry model.LedgerEntry) error
	entries    []model.LedgerEntry
}

func (m *mockLedgerRepository) Append(ctx context.Context, entry model.LedgerEntry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLedgerRepository) FindByWalletID(_ context.Context, _ string, _ time.Time, limit int) ([]model.LedgerEntry, error) {
	if len(m.entries) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *mockLedgerRepository) FindByRelatedID(_ context.Context, walletID, relatedID string, limit int) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, e := range m.entries {
		if e.WalletID == walletID && e.RelatedID == relatedID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockWalletEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockWalletEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// fakeTransferExecutor applies transfers against in-memory balances with the
// same all-or-nothing semantics as the storage adapter: every precondition is
// checked before either side changes.
type fakeTransferExecutor struct {
	walletBalances map[string]decimal.Decimal
	goalBalances   map[string]decimal.Decimal
	goalOwners     map[string]string
	removedGoals   []string
}

func newFakeTransferExecutor() *fakeTransferExecutor {
	return &fakeTransferExecutor{
		walletBalances: make(map[string]decimal.Decimal),
		goalBalances:   make(map[string]decimal.Decimal),
		goalOwners:     make(map[string]string),
	}
}

func (f *fakeTransferExecutor) Execute(_ context.Context, transfer model.Transfer) error {
	if err := transfer.Validate(); err != nil {
		return err
	}
	for _, leg := range []model.Leg{transfer.Debit, transfer.Credit} {
		switch leg.Entity {
		case model.EntityWallet:
			if _, ok := f.walletBalances[leg.Key]; !ok {
				return model.ErrTargetNotFound
			}
		case model.EntitySavingsGoal:
			owner, ok := f.goalOwners[leg.Key]
			if !ok {
				return model.ErrTargetNotFound
			}
			if leg.OwnerWalletID != "" && owner != leg.OwnerWalletID {
				return model.ErrOwnershipMismatch
			}
		}
	}

	debit := transfer.Debit
	switch debit.Entity {
	case model.EntityWallet:
		if f.walletBalances[debit.Key].LessThan(debit.Amount) {
			return model.ErrInsufficientFunds
		}
		f.walletBalances[debit.Key] = f.walletBalances[debit.Key].Sub(debit.Amount)
	case model.EntitySavingsGoal:
		if f.goalBalances[debit.Key].LessThan(debit.Amount) {
			return model.ErrInsufficientFunds
		}
		f.goalBalances[debit.Key] = f.goalBalances[debit.Key].Sub(debit.Amount)
	}

	credit := transfer.Credit
	switch credit.Entity {
	case model.EntityWallet:
		f.walletBalances[credit.Key] = f.walletBalances[credit.Key].Add(credit.Amount)
	case model.EntitySavingsGoal:
		f.goalBalances[credit.Key] = f.goalBalances[credit.Key].Add(credit.Amount)
	}

	for _, leg := range []model.Leg{debit, credit} {
		if leg.RemoveAfter && leg.Entity == model.EntitySavingsGoal {
			delete(f.goalBalances, leg.Key)
			delete(f.goalOwners, leg.Key)
			f.removedGoals = append(f.removedGoals, leg.Key)
		}
	}
	return nil
}

func existingWallet(balance string) model.Wallet {
	now := time.Now().UTC()
	m, _ := money.NewFromString(balance, "USD")
	return model.ReconstructWallet(testutil.TestWalletID, "Alice", m, 1, now, now)
}

func existingGoal(current, target string) model.SavingsGoal {
	return model.ReconstructSavingsGoal(
		testutil.TestGoalID, testutil.TestWalletID, "Vacation",
		testutil.Dec(target), testutil.Dec(current),
		time.Now().UTC(),
	)
}

// --- Tests ---

func TestCreateWallet_Execute(t *testing.T) {
	t.Run("creates a wallet with a zero balance", func(t *testing.T) {
		walletRepo := &mockWalletRepository{}
		publisher := &mockWalletEventPublisher{}
		uc := usecase.NewCreateWalletUseCase(walletRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.CreateWalletRequest{OwnerName: "Alice"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Alice", resp.OwnerName)
		testutil.AssertDecimalEqual(t, decimal.Zero, resp.Balance)
		assert.Equal(t, "USD", resp.Currency)

		require.Len(t, walletRepo.savedWallets, 1)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "wallet.created", publisher.publishedEvents[0].EventType())
	})

	t.Run("fails without an owner name", func(t *testing.T) {
		uc := usecase.NewCreateWalletUseCase(&mockWalletRepository{}, &mockWalletEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CreateWalletRequest{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create wallet")
	})
}

func TestCreditAndDebitWallet_Execute(t *testing.T) {
	walletRepo := func(balance string) *mockWalletRepository {
		return &mockWalletRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Wallet, error) {
				return existingWallet(balance), nil
			},
		}
	}

	t.Run("credit records a deposit with the new balance", func(t *testing.T) {
		repo := walletRepo("100")
		ledger := &mockLedgerRepository{}
		uc := usecase.NewCreditWalletUseCase(repo, ledger, &mockWalletEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.CreditWalletRequest{
			WalletID: testutil.TestWalletID,
			Amount:   testutil.Dec("50.25"),
		})

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, testutil.Dec("150.25"), resp.BalanceAfter)

		require.Len(t, ledger.entries, 1)
		assert.Equal(t, model.EntryDeposit, ledger.entries[0].Type)
		require.NotNil(t, ledger.entries[0].BalanceAfter)
		testutil.AssertDecimalEqual(t, testutil.Dec("150.25"), *ledger.entries[0].BalanceAfter)
	})

	t.Run("debit rejects an overdraw without touching the ledger", func(t *testing.T) {
		repo := walletRepo("100")
		ledger := &mockLedgerRepository{}
		uc := usecase.NewDebitWalletUseCase(repo, ledger, &mockWalletEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.DebitWalletRequest{
			WalletID: testutil.TestWalletID,
			Amount:   testutil.Dec("100.01"),
		})

		assert.ErrorIs(t, err, model.ErrInsufficientFunds)
		assert.Empty(t, repo.savedWallets)
		assert.Empty(t, ledger.entries)
	})

	t.Run("debit records a withdrawal", func(t *testing.T) {
		repo := walletRepo("100")
		ledger := &mockLedgerRepository{}
		uc := usecase.NewDebitWalletUseCase(repo, ledger, &mockWalletEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.DebitWalletRequest{
			WalletID: testutil.TestWalletID,
			Amount:   testutil.Dec("100"),
		})

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, resp.BalanceAfter)
		require.Len(t, ledger.entries, 1)
		assert.Equal(t, model.EntryWithdrawal, ledger.entries[0].Type)
	})
}
