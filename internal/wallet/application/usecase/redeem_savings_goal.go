package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/event"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// RedeemSavingsGoalUseCase returns a completed goal's funds to its wallet
// and removes the goal, all in one atomic transfer.
type RedeemSavingsGoalUseCase struct {
	goalRepo  port.SavingsGoalRepository
	transfers port.TransferExecutor
	ledger    port.LedgerRepository
	publisher port.EventPublisher
}

// NewRedeemSavingsGoalUseCase wires dependencies.
func NewRedeemSavingsGoalUseCase(
	goalRepo port.SavingsGoalRepository,
	transfers port.TransferExecutor,
	ledger port.LedgerRepository,
	publisher port.EventPublisher,
) *RedeemSavingsGoalUseCase {
	return &RedeemSavingsGoalUseCase{
		goalRepo:  goalRepo,
		transfers: transfers,
		ledger:    ledger,
		publisher: publisher,
	}
}

// Execute redeems the goal. Incomplete goals are rejected with
// model.ErrGoalNotComplete.
func (uc *RedeemSavingsGoalUseCase) Execute(
	ctx context.Context,
	req dto.RedeemGoalRequest,
) (dto.RedeemGoalResponse, error) {
	now := time.Now().UTC()

	// 1. Check completeness and ownership up front for a clear error; the
	// transfer repeats the ownership check atomically.
	goal, err := uc.goalRepo.FindByID(ctx, req.GoalID)
	if err != nil {
		return dto.RedeemGoalResponse{}, fmt.Errorf("find goal: %w", err)
	}
	if !goal.BelongsTo(req.WalletID) {
		return dto.RedeemGoalResponse{}, model.ErrOwnershipMismatch
	}
	if !goal.IsComplete() {
		return dto.RedeemGoalResponse{}, model.ErrGoalNotComplete
	}

	amount := goal.CurrentAmount()

	// 2. Move the funds back and delete the goal in the same transaction.
	transfer := model.Transfer{
		Debit: model.Leg{
			Entity:        model.EntitySavingsGoal,
			Key:           req.GoalID,
			Amount:        amount,
			OwnerWalletID: req.WalletID,
			RemoveAfter:   true,
		},
		Credit: model.Leg{
			Entity: model.EntityWallet,
			Key:    req.WalletID,
			Amount: amount,
		},
	}
	if err := uc.transfers.Execute(ctx, transfer); err != nil {
		return dto.RedeemGoalResponse{}, fmt.Errorf("execute transfer: %w", err)
	}

	// 3. Record and publish.
	entry := model.NewLedgerEntry(
		req.WalletID, model.EntrySavingsRedeem, amount,
		nil, req.GoalID, fmt.Sprintf("redeemed goal %q", goal.Name()), now,
	)
	if err := uc.ledger.Append(ctx, entry); err != nil {
		return dto.RedeemGoalResponse{}, fmt.Errorf("append ledger entry: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewGoalRedeemed(req.GoalID, req.WalletID, amount)); err != nil {
		return dto.RedeemGoalResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.RedeemGoalResponse{
		WalletID:       req.WalletID,
		GoalID:         req.GoalID,
		AmountReturned: amount,
	}, nil
}
