package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	"github.com/nestfin/nestfin/pkg/money"
)

// WalletRepo implements port.WalletRepository using PostgreSQL.
type WalletRepo struct {
	pool *pgxpool.Pool
}

// NewWalletRepo creates a new PostgreSQL-backed wallet repository.
func NewWalletRepo(pool *pgxpool.Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Save persists a wallet using an upsert with optimistic concurrency control.
func (r *WalletRepo) Save(ctx context.Context, wallet model.Wallet) error {
	const query = `
		INSERT INTO wallets (id, owner_name, balance, currency, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			balance    = EXCLUDED.balance,
			version    = wallets.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE wallets.version = EXCLUDED.version
	`
	tag, err := r.pool.Exec(ctx, query,
		wallet.ID(), wallet.OwnerName(),
		wallet.Balance().Amount(), wallet.Balance().Currency().Code(),
		wallet.Version(), wallet.CreatedAt(), wallet.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("optimistic concurrency conflict: wallet %s has been modified", wallet.ID())
	}
	return nil
}

// FindByID retrieves a wallet by ID.
func (r *WalletRepo) FindByID(ctx context.Context, id string) (model.Wallet, error) {
	const query = `
		SELECT id, owner_name, balance, currency, version, created_at, updated_at
		FROM wallets
		WHERE id = $1
	`

	var (
		walletID, ownerName, currencyCode string
		balance                           decimal.Decimal
		version                           int
		createdAt, updatedAt              time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&walletID, &ownerName, &balance, &currencyCode, &version, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Wallet{}, fmt.Errorf("wallet %s: %w", id, model.ErrTargetNotFound)
	}
	if err != nil {
		return model.Wallet{}, fmt.Errorf("scan wallet: %w", err)
	}

	currency, err := money.NewCurrency(currencyCode)
	if err != nil {
		return model.Wallet{}, fmt.Errorf("parse wallet currency: %w", err)
	}

	return model.ReconstructWallet(
		walletID, ownerName, money.New(balance, currency), version, createdAt, updatedAt,
	), nil
}
