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
)

// SavingsGoalRepo implements port.SavingsGoalRepository using PostgreSQL.
type SavingsGoalRepo struct {
	pool *pgxpool.Pool
}

// NewSavingsGoalRepo creates a new PostgreSQL-backed savings goal repository.
func NewSavingsGoalRepo(pool *pgxpool.Pool) *SavingsGoalRepo {
	return &SavingsGoalRepo{pool: pool}
}

// Save persists a savings goal (upsert).
func (r *SavingsGoalRepo) Save(ctx context.Context, goal model.SavingsGoal) error {
	const query = `
		INSERT INTO savings_goals (id, wallet_id, name, target_amount, current_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name           = EXCLUDED.name,
			target_amount  = EXCLUDED.target_amount,
			current_amount = EXCLUDED.current_amount
	`
	_, err := r.pool.Exec(ctx, query,
		goal.ID(), goal.WalletID(), goal.Name(),
		goal.TargetAmount(), goal.CurrentAmount(), goal.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save savings goal: %w", err)
	}
	return nil
}

// FindByID retrieves a savings goal by ID.
func (r *SavingsGoalRepo) FindByID(ctx context.Context, id string) (model.SavingsGoal, error) {
	const query = `
		SELECT id, wallet_id, name, target_amount, current_amount, created_at
		FROM savings_goals
		WHERE id = $1
	`
	goal, err := scanSavingsGoal(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.SavingsGoal{}, fmt.Errorf("savings goal %s: %w", id, model.ErrTargetNotFound)
	}
	return goal, err
}

// FindByWalletID retrieves all goals for a wallet, oldest first.
func (r *SavingsGoalRepo) FindByWalletID(ctx context.Context, walletID string) ([]model.SavingsGoal, error) {
	const query = `
		SELECT id, wallet_id, name, target_amount, current_amount, created_at
		FROM savings_goals
		WHERE wallet_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("query savings goals: %w", err)
	}
	defer rows.Close()

	var result []model.SavingsGoal
	for rows.Next() {
		goal, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, goal)
	}
	return result, rows.Err()
}

// Delete removes a goal. Funded goals are removed by the transfer executor
// instead, so the refund and the removal share one transaction.
func (r *SavingsGoalRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM savings_goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTargetNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSavingsGoal(s scannable) (model.SavingsGoal, error) {
	var (
		id, walletID, name           string
		targetAmount, currentAmount  decimal.Decimal
		createdAt                    time.Time
	)
	err := s.Scan(&id, &walletID, &name, &targetAmount, &currentAmount, &createdAt)
	if err != nil {
		return model.SavingsGoal{}, fmt.Errorf("scan savings goal: %w", err)
	}
	return model.ReconstructSavingsGoal(id, walletID, name, targetAmount, currentAmount, createdAt), nil
}
