package usecase

import (
	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/domain/model"
)

func toWalletResponse(w model.Wallet, goals []model.SavingsGoal) dto.WalletResponse {
	resp := dto.WalletResponse{
		ID:        w.ID(),
		OwnerName: w.OwnerName(),
		Balance:   w.Balance().Amount(),
		Currency:  w.Balance().Currency().Code(),
		CreatedAt: w.CreatedAt(),
		UpdatedAt: w.UpdatedAt(),
	}
	for _, g := range goals {
		resp.Goals = append(resp.Goals, toGoalResponse(g))
	}
	return resp
}

func toGoalResponse(g model.SavingsGoal) dto.GoalResponse {
	return dto.GoalResponse{
		ID:            g.ID(),
		WalletID:      g.WalletID(),
		Name:          g.Name(),
		TargetAmount:  g.TargetAmount(),
		CurrentAmount: g.CurrentAmount(),
		Complete:      g.IsComplete(),
		CreatedAt:     g.CreatedAt(),
	}
}

func toLedgerEntryResponse(e model.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:           e.ID,
		WalletID:     e.WalletID,
		Type:         string(e.Type),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		RelatedID:    e.RelatedID,
		Details:      e.Details,
		OccurredAt:   e.OccurredAt,
	}
}
