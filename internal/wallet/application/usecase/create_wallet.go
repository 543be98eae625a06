package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
)

// CreateWalletUseCase opens a new wallet with a zero balance.
type CreateWalletUseCase struct {
	walletRepo port.WalletRepository
	publisher  port.EventPublisher
}

// NewCreateWalletUseCase wires dependencies.
func NewCreateWalletUseCase(
	walletRepo port.WalletRepository,
	publisher port.EventPublisher,
) *CreateWalletUseCase {
	return &CreateWalletUseCase{
		walletRepo: walletRepo,
		publisher:  publisher,
	}
}

// Execute creates and persists the wallet.
func (uc *CreateWalletUseCase) Execute(
	ctx context.Context,
	req dto.CreateWalletRequest,
) (dto.WalletResponse, error) {
	now := time.Now().UTC()

	wallet, err := model.NewWallet(req.OwnerName, now)
	if err != nil {
		return dto.WalletResponse{}, fmt.Errorf("create wallet: %w", err)
	}

	if err := uc.walletRepo.Save(ctx, wallet); err != nil {
		return dto.WalletResponse{}, fmt.Errorf("save wallet: %w", err)
	}

	if err := uc.publisher.Publish(ctx, wallet.DomainEvents()...); err != nil {
		return dto.WalletResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toWalletResponse(wallet, nil), nil
}
