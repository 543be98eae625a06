package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/internal/wallet/domain/port"
	"github.com/nestfin/nestfin/pkg/money"
)

// CreditWalletUseCase deposits money into a wallet.
type CreditWalletUseCase struct {
	walletRepo port.WalletRepository
	ledger     port.LedgerRepository
	publisher  port.EventPublisher
}

// NewCreditWalletUseCase wires dependencies.
func NewCreditWalletUseCase(
	walletRepo port.WalletRepository,
	ledger port.LedgerRepository,
	publisher port.EventPublisher,
) *CreditWalletUseCase {
	return &CreditWalletUseCase{
		walletRepo: walletRepo,
		ledger:     ledger,
		publisher:  publisher,
	}
}

// Execute credits the wallet and records a deposit in the ledger.
func (uc *CreditWalletUseCase) Execute(
	ctx context.Context,
	req dto.CreditWalletRequest,
) (dto.MovementResponse, error) {
	now := time.Now().UTC()

	wallet, err := uc.walletRepo.FindByID(ctx, req.WalletID)
	if err != nil {
		return dto.MovementResponse{}, fmt.Errorf("find wallet: %w", err)
	}

	wallet, err = wallet.Credit(money.New(req.Amount, money.USD), now)
	if err != nil {
		return dto.MovementResponse{}, fmt.Errorf("credit wallet: %w", err)
	}

	if err := uc.walletRepo.Save(ctx, wallet); err != nil {
		return dto.MovementResponse{}, fmt.Errorf("save wallet: %w", err)
	}

	balanceAfter := wallet.Balance().Amount()
	entry := model.NewLedgerEntry(
		wallet.ID(), model.EntryDeposit, req.Amount,
		&balanceAfter, "", req.Details, now,
	)
	if err := uc.ledger.Append(ctx, entry); err != nil {
		return dto.MovementResponse{}, fmt.Errorf("append ledger entry: %w", err)
	}

	if err := uc.publisher.Publish(ctx, wallet.DomainEvents()...); err != nil {
		return dto.MovementResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.MovementResponse{
		WalletID:     wallet.ID(),
		Amount:       req.Amount,
		BalanceAfter: balanceAfter,
	}, nil
}
