package event

import (
	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/pkg/events"
)

// DomainEvent re-exports the shared event contract for this context.
type DomainEvent = events.DomainEvent

const aggregateWallet = "Wallet"
const aggregateGoal = "SavingsGoal"

// ---------------------------------------------------------------------------
// Wallet events
// ---------------------------------------------------------------------------

type WalletCreated struct {
	events.BaseEvent
	OwnerName string `json:"owner_name"`
}

func NewWalletCreated(walletID, ownerName string) WalletCreated {
	return WalletCreated{
		BaseEvent: events.NewBaseEvent("wallet.created", walletID, aggregateWallet),
		OwnerName: ownerName,
	}
}

type WalletCredited struct {
	events.BaseEvent
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

func NewWalletCredited(walletID string, amount, balanceAfter decimal.Decimal) WalletCredited {
	return WalletCredited{
		BaseEvent:    events.NewBaseEvent("wallet.credited", walletID, aggregateWallet),
		Amount:       amount,
		BalanceAfter: balanceAfter,
	}
}

type WalletDebited struct {
	events.BaseEvent
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

func NewWalletDebited(walletID string, amount, balanceAfter decimal.Decimal) WalletDebited {
	return WalletDebited{
		BaseEvent:    events.NewBaseEvent("wallet.debited", walletID, aggregateWallet),
		Amount:       amount,
		BalanceAfter: balanceAfter,
	}
}

// ---------------------------------------------------------------------------
// Savings goal events
// ---------------------------------------------------------------------------

type GoalCreated struct {
	events.BaseEvent
	WalletID     string          `json:"wallet_id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

func NewGoalCreated(goalID, walletID, name string, targetAmount decimal.Decimal) GoalCreated {
	return GoalCreated{
		BaseEvent:    events.NewBaseEvent("wallet.goal.created", goalID, aggregateGoal),
		WalletID:     walletID,
		Name:         name,
		TargetAmount: targetAmount,
	}
}

// FundsMovedToGoal is emitted after a wallet-to-goal transfer commits.
type FundsMovedToGoal struct {
	events.BaseEvent
	WalletID string          `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewFundsMovedToGoal(goalID, walletID string, amount decimal.Decimal) FundsMovedToGoal {
	return FundsMovedToGoal{
		BaseEvent: events.NewBaseEvent("wallet.goal.funded", goalID, aggregateGoal),
		WalletID:  walletID,
		Amount:    amount,
	}
}

// GoalRedeemed is emitted when a completed goal's funds return to the wallet
// and the goal is removed.
type GoalRedeemed struct {
	events.BaseEvent
	WalletID string          `json:"wallet_id"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewGoalRedeemed(goalID, walletID string, amount decimal.Decimal) GoalRedeemed {
	return GoalRedeemed{
		BaseEvent: events.NewBaseEvent("wallet.goal.redeemed", goalID, aggregateGoal),
		WalletID:  walletID,
		Amount:    amount,
	}
}

// GoalDeleted is emitted when an incomplete goal is dissolved and its saved
// funds are refunded to the wallet.
type GoalDeleted struct {
	events.BaseEvent
	WalletID       string          `json:"wallet_id"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
}

func NewGoalDeleted(goalID, walletID string, refundedAmount decimal.Decimal) GoalDeleted {
	return GoalDeleted{
		BaseEvent:      events.NewBaseEvent("wallet.goal.deleted", goalID, aggregateGoal),
		WalletID:       walletID,
		RefundedAmount: refundedAmount,
	}
}
