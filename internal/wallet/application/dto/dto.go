package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreateWalletRequest carries the data for a new wallet.
type CreateWalletRequest struct {
	OwnerName string `json:"owner_name"`
}

// GetWalletRequest identifies a wallet to retrieve.
type GetWalletRequest struct {
	WalletID string `json:"wallet_id"`
}

// CreditWalletRequest deposits money into a wallet.
type CreditWalletRequest struct {
	WalletID string          `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
	Details  string          `json:"details,omitempty"`
}

// DebitWalletRequest withdraws money from a wallet.
type DebitWalletRequest struct {
	WalletID string          `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
	Details  string          `json:"details,omitempty"`
}

// CreateGoalRequest carries the data for a new savings goal.
type CreateGoalRequest struct {
	WalletID     string          `json:"wallet_id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

// AddToGoalRequest moves money from the wallet into one of its goals.
type AddToGoalRequest struct {
	WalletID string          `json:"wallet_id"`
	GoalID   string          `json:"goal_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// RedeemGoalRequest returns a completed goal's funds to the wallet and
// removes the goal.
type RedeemGoalRequest struct {
	WalletID string `json:"wallet_id"`
	GoalID   string `json:"goal_id"`
}

// DeleteGoalRequest dissolves a goal, refunding any saved amount.
type DeleteGoalRequest struct {
	WalletID string `json:"wallet_id"`
	GoalID   string `json:"goal_id"`
}

// ListTransactionsRequest pages through a wallet's ledger.
type ListTransactionsRequest struct {
	WalletID string    `json:"wallet_id"`
	Since    time.Time `json:"since,omitempty"`
	Limit    int       `json:"limit,omitempty"`
}

// ListGoalTransactionsRequest pages through the ledger entries tied to one
// savings goal.
type ListGoalTransactionsRequest struct {
	WalletID string `json:"wallet_id"`
	GoalID   string `json:"goal_id"`
	Limit    int    `json:"limit,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// GoalResponse is the external representation of a savings goal.
type GoalResponse struct {
	ID            string          `json:"id"`
	WalletID      string          `json:"wallet_id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Complete      bool            `json:"complete"`
	CreatedAt     time.Time       `json:"created_at"`
}

// WalletResponse is the external representation of a wallet.
type WalletResponse struct {
	ID        string          `json:"id"`
	OwnerName string          `json:"owner_name"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Goals     []GoalResponse  `json:"goals,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovementResponse is the result of a balance movement.
type MovementResponse struct {
	WalletID     string          `json:"wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// RedeemGoalResponse reports the funds returned to the wallet.
type RedeemGoalResponse struct {
	WalletID       string          `json:"wallet_id"`
	GoalID         string          `json:"goal_id"`
	AmountReturned decimal.Decimal `json:"amount_returned"`
}

// LedgerEntryResponse is one row of the wallet transaction log.
type LedgerEntryResponse struct {
	ID           string           `json:"id"`
	WalletID     string           `json:"wallet_id"`
	Type         string           `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	BalanceAfter *decimal.Decimal `json:"balance_after,omitempty"`
	RelatedID    string           `json:"related_id,omitempty"`
	Details      string           `json:"details,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
