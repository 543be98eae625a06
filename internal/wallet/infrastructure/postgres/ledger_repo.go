package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/wallet/domain/model"
)

// LedgerRepo implements port.LedgerRepository using PostgreSQL. The table is
// append-only; entries are never updated or deleted.
type LedgerRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerRepo creates a new PostgreSQL-backed ledger repository.
func NewLedgerRepo(pool *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Append writes one ledger entry.
func (r *LedgerRepo) Append(ctx context.Context, entry model.LedgerEntry) error {
	const query = `
		INSERT INTO ledger_entries (id, wallet_id, entry_type, amount, balance_after, related_id, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.WalletID, string(entry.Type), entry.Amount,
		entry.BalanceAfter, nullableString(entry.RelatedID), entry.Details, entry.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// FindByWalletID retrieves a wallet's ledger entries, newest first. A zero
// since means no lower bound.
func (r *LedgerRepo) FindByWalletID(ctx context.Context, walletID string, since time.Time, limit int) ([]model.LedgerEntry, error) {
	const query = `
		SELECT id, wallet_id, entry_type, amount, balance_after, related_id, details, occurred_at
		FROM ledger_entries
		WHERE wallet_id = $1 AND occurred_at >= $2
		ORDER BY occurred_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, walletID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// FindByRelatedID retrieves the entries tied to one related aggregate, such
// as a savings goal or a loan, newest first.
func (r *LedgerRepo) FindByRelatedID(ctx context.Context, walletID, relatedID string, limit int) ([]model.LedgerEntry, error) {
	const query = `
		SELECT id, wallet_id, entry_type, amount, balance_after, related_id, details, occurred_at
		FROM ledger_entries
		WHERE wallet_id = $1 AND related_id = $2
		ORDER BY occurred_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, walletID, relatedID, limit)
	if err != nil {
		return nil, fmt.Errorf("query ledger entries by related id: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows pgx.Rows) ([]model.LedgerEntry, error) {
	var result []model.LedgerEntry
	for rows.Next() {
		var (
			entry        model.LedgerEntry
			entryType    string
			balanceAfter *decimal.Decimal
			relatedID    *string
		)
		err := rows.Scan(
			&entry.ID, &entry.WalletID, &entryType, &entry.Amount,
			&balanceAfter, &relatedID, &entry.Details, &entry.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entry.Type = model.EntryType(entryType)
		entry.BalanceAfter = balanceAfter
		if relatedID != nil {
			entry.RelatedID = *relatedID
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
