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

// DeleteSavingsGoalUseCase dissolves a goal regardless of completeness and
// refunds any saved amount to the wallet.
type DeleteSavingsGoalUseCase struct {
	goalRepo  port.SavingsGoalRepository
	transfers port.TransferExecutor
	ledger    port.LedgerRepository
	publisher port.EventPublisher
}

// NewDeleteSavingsGoalUseCase wires dependencies.
func NewDeleteSavingsGoalUseCase(
	goalRepo port.SavingsGoalRepository,
	transfers port.TransferExecutor,
	ledger port.LedgerRepository,
	publisher port.EventPublisher,
) *DeleteSavingsGoalUseCase {
	return &DeleteSavingsGoalUseCase{
		goalRepo:  goalRepo,
		transfers: transfers,
		ledger:    ledger,
		publisher: publisher,
	}
}

// Execute removes the goal. A funded goal is dissolved through an atomic
// refund transfer; an empty goal is simply deleted.
func (uc *DeleteSavingsGoalUseCase) Execute(
	ctx context.Context,
	req dto.DeleteGoalRequest,
) (dto.RedeemGoalResponse, error) {
	now := time.Now().UTC()

	goal, err := uc.goalRepo.FindByID(ctx, req.GoalID)
	if err != nil {
		return dto.RedeemGoalResponse{}, fmt.Errorf("find goal: %w", err)
	}
	if !goal.BelongsTo(req.WalletID) {
		return dto.RedeemGoalResponse{}, model.ErrOwnershipMismatch
	}

	refund := goal.CurrentAmount()

	if refund.IsPositive() {
		transfer := model.Transfer{
			Debit: model.Leg{
				Entity:        model.EntitySavingsGoal,
				Key:           req.GoalID,
				Amount:        refund,
				OwnerWalletID: req.WalletID,
				RemoveAfter:   true,
			},
			Credit: model.Leg{
				Entity: model.EntityWallet,
				Key:    req.WalletID,
				Amount: refund,
			},
		}
		if err := uc.transfers.Execute(ctx, transfer); err != nil {
			return dto.RedeemGoalResponse{}, fmt.Errorf("execute transfer: %w", err)
		}

		entry := model.NewLedgerEntry(
			req.WalletID, model.EntrySavingsRefund, refund,
			nil, req.GoalID, fmt.Sprintf("dissolved goal %q", goal.Name()), now,
		)
		if err := uc.ledger.Append(ctx, entry); err != nil {
			return dto.RedeemGoalResponse{}, fmt.Errorf("append ledger entry: %w", err)
		}
	} else if err := uc.goalRepo.Delete(ctx, req.GoalID); err != nil {
		return dto.RedeemGoalResponse{}, fmt.Errorf("delete goal: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewGoalDeleted(req.GoalID, req.WalletID, refund)); err != nil {
		return dto.RedeemGoalResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.RedeemGoalResponse{
		WalletID:       req.WalletID,
		GoalID:         req.GoalID,
		AmountReturned: refund,
	}, nil
}
