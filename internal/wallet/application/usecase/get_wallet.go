package usecase

import (
	"context"
	"fmt"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// GetWalletUseCase retrieves a wallet together with its savings goals.
type GetWalletUseCase struct {
	walletRepo port.WalletRepository
	goalRepo   port.SavingsGoalRepository
}

// NewGetWalletUseCase wires dependencies.
func NewGetWalletUseCase(
	walletRepo port.WalletRepository,
	goalRepo port.SavingsGoalRepository,
) *GetWalletUseCase {
	return &GetWalletUseCase{
		walletRepo: walletRepo,
		goalRepo:   goalRepo,
	}
}

// Execute looks up the wallet and its goals.
func (uc *GetWalletUseCase) Execute(
	ctx context.Context,
	req dto.GetWalletRequest,
) (dto.WalletResponse, error) {
	wallet, err := uc.walletRepo.FindByID(ctx, req.WalletID)
	if err != nil {
		return dto.WalletResponse{}, fmt.Errorf("find wallet: %w", err)
	}

	goals, err := uc.goalRepo.FindByWalletID(ctx, req.WalletID)
	if err != nil {
		return dto.WalletResponse{}, fmt.Errorf("find goals: %w", err)
	}

	return toWalletResponse(wallet, goals), nil
}
