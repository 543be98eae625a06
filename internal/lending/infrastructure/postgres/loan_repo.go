package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/lending/domain/model"
	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
)

// LoanRepo implements port.LoanRepository using PostgreSQL.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists a loan using an upsert with optimistic concurrency control.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	const query = `
		INSERT INTO loans (
			id, wallet_id, principal, remaining_balance, annual_interest_rate,
			minimum_payment, term_months, status, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			remaining_balance = EXCLUDED.remaining_balance,
			status            = EXCLUDED.status,
			version           = loans.version + 1,
			updated_at        = EXCLUDED.updated_at
		WHERE loans.version = EXCLUDED.version
	`
	tag, err := r.pool.Exec(ctx, query,
		loan.ID(), loan.WalletID(),
		loan.Principal(), loan.RemainingBalance(), loan.AnnualInterestRate(),
		loan.MinimumPayment(), loan.TermMonths(), loan.Status().String(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("optimistic concurrency conflict: loan %s has been modified", loan.ID())
	}
	return nil
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	const query = `
		SELECT id, wallet_id, principal, remaining_balance, annual_interest_rate,
		       minimum_payment, term_months, status, version, created_at, updated_at
		FROM loans
		WHERE id = $1
	`
	loan, err := scanLoan(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, fmt.Errorf("loan %s: %w", id, model.ErrLoanNotFound)
	}
	return loan, err
}

// FindByWalletID retrieves a wallet's loans, newest first. A zero status
// matches all statuses.
func (r *LoanRepo) FindByWalletID(ctx context.Context, walletID string, status valueobject.LoanStatus) ([]model.Loan, error) {
	query := `
		SELECT id, wallet_id, principal, remaining_balance, annual_interest_rate,
		       minimum_payment, term_months, status, version, created_at, updated_at
		FROM loans
		WHERE wallet_id = $1
	`
	args := []any{walletID}
	if !status.IsZero() {
		query += ` AND status = $2`
		args = append(args, status.String())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var result []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, loan)
	}
	return result, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLoan(s scannable) (model.Loan, error) {
	var (
		id, walletID, statusStr                                       string
		principal, remainingBalance, annualInterestRate, minimumPayment decimal.Decimal
		termMonths, version                                           int
		createdAt, updatedAt                                          time.Time
	)

	err := s.Scan(
		&id, &walletID, &principal, &remainingBalance, &annualInterestRate,
		&minimumPayment, &termMonths, &statusStr, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, walletID, principal, remainingBalance, annualInterestRate,
		minimumPayment, termMonths, status, version, createdAt, updatedAt,
	), nil
}
