package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryDeposit          EntryType = "DEPOSIT"
	EntryWithdrawal       EntryType = "WITHDRAWAL"
	EntrySavingsAdd       EntryType = "SAVINGS_ADD"
	EntrySavingsRedeem    EntryType = "SAVINGS_REDEEM"
	EntrySavingsRefund    EntryType = "SAVINGS_REFUND"
	EntryLoanDisbursement EntryType = "LOAN_DISBURSEMENT"
	EntryLoanRepayment    EntryType = "LOAN_REPAYMENT"
)

// LedgerEntry is one row of the append-only wallet transaction log.
// Entries are written after a movement commits and are never updated.
type LedgerEntry struct {
	ID         string
	WalletID   string
	Type       EntryType
	Amount     decimal.Decimal
	// BalanceAfter is nil when the resulting balance was not observed
	// (e.g. the movement only touched a goal or loan).
	BalanceAfter *decimal.Decimal
	// RelatedID links the entry to the goal or loan involved, if any.
	RelatedID  string
	Details    string
	OccurredAt time.Time
}

// NewLedgerEntry records a wallet movement.
func NewLedgerEntry(
	walletID string,
	entryType EntryType,
	amount decimal.Decimal,
	balanceAfter *decimal.Decimal,
	relatedID, details string,
	now time.Time,
) LedgerEntry {
	return LedgerEntry{
		ID:           uuid.New().String(),
		WalletID:     walletID,
		Type:         entryType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		RelatedID:    relatedID,
		Details:      details,
		OccurredAt:   now,
	}
}
