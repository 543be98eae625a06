package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// CreateSavingsGoalUseCase creates an empty savings goal inside a wallet.
type CreateSavingsGoalUseCase struct {
	walletRepo port.WalletRepository
	goalRepo   port.SavingsGoalRepository
	publisher  port.EventPublisher
}

// NewCreateSavingsGoalUseCase wires dependencies.
func NewCreateSavingsGoalUseCase(
	walletRepo port.WalletRepository,
	goalRepo port.SavingsGoalRepository,
	publisher port.EventPublisher,
) *CreateSavingsGoalUseCase {
	return &CreateSavingsGoalUseCase{
		walletRepo: walletRepo,
		goalRepo:   goalRepo,
		publisher:  publisher,
	}
}

// Execute creates the goal after confirming the wallet exists.
func (uc *CreateSavingsGoalUseCase) Execute(
	ctx context.Context,
	req dto.CreateGoalRequest,
) (dto.GoalResponse, error) {
	now := time.Now().UTC()

	if _, err := uc.walletRepo.FindByID(ctx, req.WalletID); err != nil {
		return dto.GoalResponse{}, fmt.Errorf("find wallet: %w", err)
	}

	goal, err := model.NewSavingsGoal(req.WalletID, req.Name, req.TargetAmount, now)
	if err != nil {
		return dto.GoalResponse{}, fmt.Errorf("create goal: %w", err)
	}

	if err := uc.goalRepo.Save(ctx, goal); err != nil {
		return dto.GoalResponse{}, fmt.Errorf("save goal: %w", err)
	}

	if err := uc.publisher.Publish(ctx, goal.DomainEvents()...); err != nil {
		return dto.GoalResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toGoalResponse(goal), nil
}
