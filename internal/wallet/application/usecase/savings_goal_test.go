package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/application/usecase"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/pkg/testutil"
)

func TestCreateSavingsGoal_Execute(t *testing.T) {
	t.Run("creates an empty goal", func(t *testing.T) {
		walletRepo := &mockWalletRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Wallet, error) {
				return existingWallet("100"), nil
			},
		}
		goalRepo := &mockGoalRepository{}
		publisher := &mockWalletEventPublisher{}
		uc := usecase.NewCreateSavingsGoalUseCase(walletRepo, goalRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.CreateGoalRequest{
			WalletID:     testutil.TestWalletID,
			Name:         "Vacation",
			TargetAmount: testutil.Dec("2000"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Vacation", resp.Name)
		testutil.AssertDecimalEqual(t, testutil.Dec("0"), resp.CurrentAmount)
		assert.False(t, resp.Complete)

		require.Len(t, goalRepo.savedGoals, 1)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "wallet.goal.created", publisher.publishedEvents[0].EventType())
	})

	t.Run("fails when the wallet does not exist", func(t *testing.T) {
		uc := usecase.NewCreateSavingsGoalUseCase(&mockWalletRepository{}, &mockGoalRepository{}, &mockWalletEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.CreateGoalRequest{
			WalletID:     "missing",
			Name:         "Vacation",
			TargetAmount: testutil.Dec("2000"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "find wallet")
	})
}

func TestAddToSavingsGoal_Execute(t *testing.T) {
	setup := func(walletBalance, goalBalance string) (*fakeTransferExecutor, *mockGoalRepository) {
		executor := newFakeTransferExecutor()
		executor.walletBalances[testutil.TestWalletID] = testutil.Dec(walletBalance)
		executor.goalBalances[testutil.TestGoalID] = testutil.Dec(goalBalance)
		executor.goalOwners[testutil.TestGoalID] = testutil.TestWalletID

		goalRepo := &mockGoalRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.SavingsGoal, error) {
				return existingGoal(executor.goalBalances[id].String(), "2000"), nil
			},
		}
		return executor, goalRepo
	}

	t.Run("moves money from the wallet into the goal", func(t *testing.T) {
		executor, goalRepo := setup("500", "0")
		ledger := &mockLedgerRepository{}
		uc := usecase.NewAddToSavingsGoalUseCase(goalRepo, executor, ledger, &mockWalletEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.AddToGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   testutil.TestGoalID,
			Amount:   testutil.Dec("200"),
		})

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, testutil.Dec("200"), resp.CurrentAmount)
		testutil.AssertDecimalEqual(t, testutil.Dec("300"), executor.walletBalances[testutil.TestWalletID])
		testutil.AssertDecimalEqual(t, testutil.Dec("200"), executor.goalBalances[testutil.TestGoalID])

		require.Len(t, ledger.entries, 1)
		assert.Equal(t, model.EntrySavingsAdd, ledger.entries[0].Type)
	})

	t.Run("insufficient funds aborts both legs", func(t *testing.T) {
		executor, goalRepo := setup("100", "50")
		ledger := &mockLedgerRepository{}
		publisher := &mockWalletEventPublisher{}
		uc := usecase.NewAddToSavingsGoalUseCase(goalRepo, executor, ledger, publisher)

		_, err := uc.Execute(context.Background(), dto.AddToGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   testutil.TestGoalID,
			Amount:   testutil.Dec("100.01"),
		})

		assert.ErrorIs(t, err, model.ErrInsufficientFunds)
		// Neither balance changed.
		testutil.AssertDecimalEqual(t, testutil.Dec("100"), executor.walletBalances[testutil.TestWalletID])
		testutil.AssertDecimalEqual(t, testutil.Dec("50"), executor.goalBalances[testutil.TestGoalID])
		assert.Empty(t, ledger.entries)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("a goal owned by another wallet aborts the transfer", func(t *testing.T) {
		executor, goalRepo := setup("500", "0")
		executor.goalOwners[testutil.TestGoalID] = "someone-else"
		uc := usecase.NewAddToSavingsGoalUseCase(goalRepo, executor, &mockLedgerRepository{}, &mockWalletEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.AddToGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   testutil.TestGoalID,
			Amount:   testutil.Dec("200"),
		})

		assert.ErrorIs(t, err, model.ErrOwnershipMismatch)
		testutil.AssertDecimalEqual(t, testutil.Dec("500"), executor.walletBalances[testutil.TestWalletID])
	})

	t.Run("a missing goal aborts the transfer", func(t *testing.T) {
		executor, goalRepo := setup("500", "0")
		uc := usecase.NewAddToSavingsGoalUseCase(goalRepo, executor, &mockLedgerRepository{}, &mockWalletEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.AddToGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   "missing",
			Amount:   testutil.Dec("200"),
		})

		assert.ErrorIs(t, err, model.ErrTargetNotFound)
	})
}

func TestRedeemSavingsGoal_Execute(t *testing.T) {
	t.Run("returns a completed goal's funds and removes the goal", func(t *testing.T) {
		executor := newFakeTransferExecutor()
		executor.walletBalances[testutil.TestWalletID] = testutil.Dec("100")
		executor.goalBalances[testutil.TestGoalID] = testutil.Dec("2000")
		executor.goalOwners[testutil.TestGoalID] = testutil.TestWalletID

		goalRepo := &mockGoalRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.SavingsGoal, error) {
				return existingGoal("2000", "2000"), nil
			},
		}
		ledger := &mockLedgerRepository{}
		publisher := &mockWalletEventPublisher{}
		uc := usecase.NewRedeemSavingsGoalUseCase(goalRepo, executor, ledger, publisher)

		resp, err := uc.Execute(context.Background(), dto.RedeemGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   testutil.TestGoalID,
		})

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, testutil.Dec("2000"), resp.AmountReturned)
		testutil.AssertDecimalEqual(t, testutil.Dec("2100"), executor.walletBalances[testutil.TestWalletID])
		assert.Contains(t, executor.removedGoals, testutil.TestGoalID)

		require.Len(t, ledger.entries, 1)
		assert.Equal(t, model.EntrySavingsRedeem, ledger.entries[0].Type)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "wallet.goal.redeemed", publisher.publishedEvents[0].EventType())
	})

	t.Run("rejects an incomplete goal", func(t *testing.T) {
		goalRepo := &mockGoalRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.SavingsGoal, error) {
				return existingGoal("1500", "2000"), nil
			},
		}
		uc := usecase.NewRedeemSavingsGoalUseCase(goalRepo, newFakeTransferExecutor(), &mockLedgerRepository{}, &mockWalletEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RedeemGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   testutil.TestGoalID,
		})

		assert.ErrorIs(t, err, model.ErrGoalNotComplete)
	})

	t.Run("rejects another wallet's goal", func(t *testing.T) {
		goalRepo := &mockGoalRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.SavingsGoal, error) {
				return existingGoal("2000", "2000"), nil
			},
		}
		uc := usecase.NewRedeemSavingsGoalUseCase(goalRepo, newFakeTransferExecutor(), &mockLedgerRepository{}, &mockWalletEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RedeemGoalRequest{
			WalletID: "someone-else",
			GoalID:   testutil.TestGoalID,
		})

		assert.ErrorIs(t, err, model.ErrOwnershipMismatch)
	})
}

func TestDeleteSavingsGoal_Execute(t *testing.T) {
	t.Run("refunds a funded goal through an atomic transfer", func(t *testing.T) {
		executor := newFakeTransferExecutor()
		executor.walletBalances[testutil.TestWalletID] = testutil.Dec("0")
		executor.goalBalances[testutil.TestGoalID] = testutil.Dec("750")
		executor.goalOwners[testutil.TestGoalID] = testutil.TestWalletID

		goalRepo := &mockGoalRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.SavingsGoal, error) {
				return existingGoal("750", "2000"), nil
			},
		}
		ledger := &mockLedgerRepository{}
		uc := usecase.NewDeleteSavingsGoalUseCase(goalRepo, executor, ledger, &mockWalletEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.DeleteGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   testutil.TestGoalID,
		})

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, testutil.Dec("750"), resp.AmountReturned)
		testutil.AssertDecimalEqual(t, testutil.Dec("750"), executor.walletBalances[testutil.TestWalletID])
		assert.Contains(t, executor.removedGoals, testutil.TestGoalID)

		require.Len(t, ledger.entries, 1)
		assert.Equal(t, model.EntrySavingsRefund, ledger.entries[0].Type)
	})

	t.Run("deletes an empty goal without a transfer", func(t *testing.T) {
		executor := newFakeTransferExecutor()
		goalRepo := &mockGoalRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.SavingsGoal, error) {
				return existingGoal("0", "2000"), nil
			},
		}
		ledger := &mockLedgerRepository{}
		uc := usecase.NewDeleteSavingsGoalUseCase(goalRepo, executor, ledger, &mockWalletEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.DeleteGoalRequest{
			WalletID: testutil.TestWalletID,
			GoalID:   testutil.TestGoalID,
		})

		require.NoError(t, err)
		testutil.AssertDecimalEqual(t, testutil.Dec("0"), resp.AmountReturned)
		assert.Contains(t, goalRepo.deletedIDs, testutil.TestGoalID)
		assert.Empty(t, executor.removedGoals)
		assert.Empty(t, ledger.entries)
	})
}
