package usecase

import (
	"context"
	"fmt"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// ListSavingsGoalsUseCase lists a wallet's savings goals.
type ListSavingsGoalsUseCase struct {
	goalRepo port.SavingsGoalRepository
}

// NewListSavingsGoalsUseCase wires dependencies.
func NewListSavingsGoalsUseCase(goalRepo port.SavingsGoalRepository) *ListSavingsGoalsUseCase {
	return &ListSavingsGoalsUseCase{goalRepo: goalRepo}
}

// Execute returns the wallet's goals.
func (uc *ListSavingsGoalsUseCase) Execute(
	ctx context.Context,
	walletID string,
) ([]dto.GoalResponse, error) {
	if walletID == "" {
		return nil, fmt.Errorf("wallet ID is required")
	}

	goals, err := uc.goalRepo.FindByWalletID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	out := make([]dto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return out, nil
}
