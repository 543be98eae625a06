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

// AddToSavingsGoalUseCase moves money from a wallet into one of its savings
// goals. The wallet debit and the goal credit commit atomically; the credit
// leg carries an ownership precondition so a goal belonging to another wallet
// aborts the whole transfer.
type AddToSavingsGoalUseCase struct {
	goalRepo  port.SavingsGoalRepository
	transfers port.TransferExecutor
	ledger    port.LedgerRepository
	publisher port.EventPublisher
}

// NewAddToSavingsGoalUseCase wires dependencies.
func NewAddToSavingsGoalUseCase(
	goalRepo port.SavingsGoalRepository,
	transfers port.TransferExecutor,
	ledger port.LedgerRepository,
	publisher port.EventPublisher,
) *AddToSavingsGoalUseCase {
	return &AddToSavingsGoalUseCase{
		goalRepo:  goalRepo,
		transfers: transfers,
		ledger:    ledger,
		publisher: publisher,
	}
}

// Execute funds the goal from the wallet balance.
func (uc *AddToSavingsGoalUseCase) Execute(
	ctx context.Context,
	req dto.AddToGoalRequest,
) (dto.GoalResponse, error) {
	now := time.Now().UTC()

	// 1. Move the money. Both preconditions (wallet balance, goal
	// ownership) are enforced inside the atomic write.
	transfer := model.Transfer{
		Debit: model.Leg{
			Entity: model.EntityWallet,
			Key:    req.WalletID,
			Amount: req.Amount,
		},
		Credit: model.Leg{
			Entity:        model.EntitySavingsGoal,
			Key:           req.GoalID,
			Amount:        req.Amount,
			OwnerWalletID: req.WalletID,
		},
	}
	if err := uc.transfers.Execute(ctx, transfer); err != nil {
		return dto.GoalResponse{}, fmt.Errorf("execute transfer: %w", err)
	}

	// 2. Record the movement.
	entry := model.NewLedgerEntry(
		req.WalletID, model.EntrySavingsAdd, req.Amount,
		nil, req.GoalID, "", now,
	)
	if err := uc.ledger.Append(ctx, entry); err != nil {
		return dto.GoalResponse{}, fmt.Errorf("append ledger entry: %w", err)
	}

	// 3. Publish and return the goal's post-transfer state.
	if err := uc.publisher.Publish(ctx, event.NewFundsMovedToGoal(req.GoalID, req.WalletID, req.Amount)); err != nil {
		return dto.GoalResponse{}, fmt.Errorf("publish events: %w", err)
	}

	goal, err := uc.goalRepo.FindByID(ctx, req.GoalID)
	if err != nil {
		return dto.GoalResponse{}, fmt.Errorf("reload goal: %w", err)
	}
	return toGoalResponse(goal), nil
}
