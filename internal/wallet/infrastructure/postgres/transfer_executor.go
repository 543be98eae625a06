package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nestfin/nestfin/internal/wallet/domain/model"
	pkgpostgres "github.com/nestfin/nestfin/pkg/postgres"
)

// TransferExecutor implements port.TransferExecutor. Both legs run inside a
// single database transaction, and every precondition (sufficient balance,
// existence, ownership) is part of the UPDATE's WHERE clause, so there is no
// window between checking and applying. Any failed precondition rolls back
// the whole transfer.
type TransferExecutor struct {
	pool *pgxpool.Pool
}

// NewTransferExecutor creates a new PostgreSQL-backed transfer executor.
func NewTransferExecutor(pool *pgxpool.Pool) *TransferExecutor {
	return &TransferExecutor{pool: pool}
}

// Execute applies the transfer atomically.
func (e *TransferExecutor) Execute(ctx context.Context, transfer model.Transfer) error {
	if err := transfer.Validate(); err != nil {
		return fmt.Errorf("invalid transfer: %w", err)
	}

	now := time.Now().UTC()
	return pkgpostgres.WithTransaction(ctx, e.pool, func(tx pgx.Tx) error {
		if err := e.applyDebit(ctx, tx, transfer.Debit, now); err != nil {
			return err
		}
		if err := e.applyCredit(ctx, tx, transfer.Credit, now); err != nil {
			return err
		}
		for _, leg := range []model.Leg{transfer.Debit, transfer.Credit} {
			if leg.RemoveAfter && leg.Entity == model.EntitySavingsGoal {
				if _, err := tx.Exec(ctx, `DELETE FROM savings_goals WHERE id = $1`, leg.Key); err != nil {
					return fmt.Errorf("remove goal %s: %w", leg.Key, err)
				}
			}
		}
		return nil
	})
}

func (e *TransferExecutor) applyDebit(ctx context.Context, tx pgx.Tx, leg model.Leg, now time.Time) error {
	switch leg.Entity {
	case model.EntityWallet:
		tag, err := tx.Exec(ctx, `
			UPDATE wallets
			SET balance = balance - $1, version = version + 1, updated_at = $2
			WHERE id = $3 AND balance >= $1
		`, leg.Amount, now, leg.Key)
		if err != nil {
			return fmt.Errorf("debit wallet %s: %w", leg.Key, err)
		}
		if tag.RowsAffected() == 0 {
			return e.classifyWalletFailure(ctx, tx, leg.Key)
		}
		return nil

	case model.EntitySavingsGoal:
		tag, err := tx.Exec(ctx, `
			UPDATE savings_goals
			SET current_amount = current_amount - $1
			WHERE id = $2 AND current_amount >= $1
			  AND ($3 = '' OR wallet_id = $3)
		`, leg.Amount, leg.Key, leg.OwnerWalletID)
		if err != nil {
			return fmt.Errorf("debit goal %s: %w", leg.Key, err)
		}
		if tag.RowsAffected() == 0 {
			return e.classifyGoalFailure(ctx, tx, leg)
		}
		return nil

	default:
		return fmt.Errorf("cannot debit entity kind %q", leg.Entity)
	}
}

func (e *TransferExecutor) applyCredit(ctx context.Context, tx pgx.Tx, leg model.Leg, now time.Time) error {
	switch leg.Entity {
	case model.EntityWallet:
		tag, err := tx.Exec(ctx, `
			UPDATE wallets
			SET balance = balance + $1, version = version + 1, updated_at = $2
			WHERE id = $3
		`, leg.Amount, now, leg.Key)
		if err != nil {
			return fmt.Errorf("credit wallet %s: %w", leg.Key, err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrTargetNotFound
		}
		return nil

	case model.EntitySavingsGoal:
		tag, err := tx.Exec(ctx, `
			UPDATE savings_goals
			SET current_amount = current_amount + $1
			WHERE id = $2 AND ($3 = '' OR wallet_id = $3)
		`, leg.Amount, leg.Key, leg.OwnerWalletID)
		if err != nil {
			return fmt.Errorf("credit goal %s: %w", leg.Key, err)
		}
		if tag.RowsAffected() == 0 {
			return e.classifyGoalFailure(ctx, tx, leg)
		}
		return nil

	case model.EntityLoan:
		// Crediting a loan reduces its remaining debt. The payment is capped
		// at the balance and the loan flips to PAID when it reaches zero.
		tag, err := tx.Exec(ctx, `
			UPDATE loans
			SET remaining_balance = remaining_balance - LEAST($1, remaining_balance),
			    status = CASE WHEN remaining_balance <= $1 THEN 'PAID' ELSE status END,
			    version = version + 1,
			    updated_at = $2
			WHERE id = $3 AND status = 'APPROVED'
			  AND ($4 = '' OR wallet_id = $4)
		`, leg.Amount, now, leg.Key, leg.OwnerWalletID)
		if err != nil {
			return fmt.Errorf("credit loan %s: %w", leg.Key, err)
		}
		if tag.RowsAffected() == 0 {
			return e.classifyLoanFailure(ctx, tx, leg)
		}
		return nil

	default:
		return fmt.Errorf("cannot credit entity kind %q", leg.Entity)
	}
}

// classifyWalletFailure distinguishes a missing wallet from an uncovered
// debit after a zero-row conditional update.
func (e *TransferExecutor) classifyWalletFailure(ctx context.Context, tx pgx.Tx, id string) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("inspect wallet %s: %w", id, err)
	}
	if !exists {
		return model.ErrTargetNotFound
	}
	return model.ErrInsufficientFunds
}

func (e *TransferExecutor) classifyGoalFailure(ctx context.Context, tx pgx.Tx, leg model.Leg) error {
	var ownerID string
	err := tx.QueryRow(ctx, `SELECT wallet_id FROM savings_goals WHERE id = $1`, leg.Key).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrTargetNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect goal %s: %w", leg.Key, err)
	}
	if leg.OwnerWalletID != "" && ownerID != leg.OwnerWalletID {
		return model.ErrOwnershipMismatch
	}
	return model.ErrInsufficientFunds
}

func (e *TransferExecutor) classifyLoanFailure(ctx context.Context, tx pgx.Tx, leg model.Leg) error {
	var ownerID string
	err := tx.QueryRow(ctx, `SELECT wallet_id FROM loans WHERE id = $1`, leg.Key).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrTargetNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect loan %s: %w", leg.Key, err)
	}
	if leg.OwnerWalletID != "" && ownerID != leg.OwnerWalletID {
		return model.ErrOwnershipMismatch
	}
	return fmt.Errorf("loan %s is not open for repayment", leg.Key)
}
