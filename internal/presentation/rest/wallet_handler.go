package rest

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/nestfin/nestfin/internal/wallet/application/dto"
	"github.com/nestfin/nestfin/internal/wallet/application/usecase"
)

// WalletHandler exposes wallet, savings goal, and ledger operations over HTTP.
type WalletHandler struct {
	createWallet     *usecase.CreateWalletUseCase
	getWallet        *usecase.GetWalletUseCase
	creditWallet     *usecase.CreditWalletUseCase
	debitWallet      *usecase.DebitWalletUseCase
	createGoal       *usecase.CreateSavingsGoalUseCase
	listGoals        *usecase.ListSavingsGoalsUseCase
	addToGoal        *usecase.AddToSavingsGoalUseCase
	redeemGoal       *usecase.RedeemSavingsGoalUseCase
	deleteGoal       *usecase.DeleteSavingsGoalUseCase
	listTransactions *usecase.ListTransactionsUseCase
	listGoalTxns     *usecase.ListGoalTransactionsUseCase
	logger           *slog.Logger
}

// NewWalletHandler wires the wallet use cases into an HTTP handler.
func NewWalletHandler(
	createWallet *usecase.CreateWalletUseCase,
	getWallet *usecase.GetWalletUseCase,
	creditWallet *usecase.CreditWalletUseCase,
	debitWallet *usecase.DebitWalletUseCase,
	createGoal *usecase.CreateSavingsGoalUseCase,
	listGoals *usecase.ListSavingsGoalsUseCase,
	addToGoal *usecase.AddToSavingsGoalUseCase,
	redeemGoal *usecase.RedeemSavingsGoalUseCase,
	deleteGoal *usecase.DeleteSavingsGoalUseCase,
	listTransactions *usecase.ListTransactionsUseCase,
	listGoalTxns *usecase.ListGoalTransactionsUseCase,
	logger *slog.Logger,
) *WalletHandler {
	return &WalletHandler{
		createWallet:     createWallet,
		getWallet:        getWallet,
		creditWallet:     creditWallet,
		debitWallet:      debitWallet,
		createGoal:       createGoal,
		listGoals:        listGoals,
		addToGoal:        addToGoal,
		redeemGoal:       redeemGoal,
		deleteGoal:       deleteGoal,
		listTransactions: listTransactions,
		listGoalTxns:     listGoalTxns,
		logger:           logger,
	}
}

// RegisterRoutes attaches wallet routes to the given mux.
func (h *WalletHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/wallets", h.handleCreateWallet)
	mux.HandleFunc("GET /v1/wallets/{walletID}", h.handleGetWallet)
	mux.HandleFunc("POST /v1/wallets/{walletID}/credit", h.handleCredit)
	mux.HandleFunc("POST /v1/wallets/{walletID}/debit", h.handleDebit)
	mux.HandleFunc("GET /v1/wallets/{walletID}/transactions", h.handleListTransactions)

	mux.HandleFunc("POST /v1/wallets/{walletID}/goals", h.handleCreateGoal)
	mux.HandleFunc("GET /v1/wallets/{walletID}/goals", h.handleListGoals)
	mux.HandleFunc("POST /v1/wallets/{walletID}/goals/{goalID}/deposits", h.handleAddToGoal)
	mux.HandleFunc("POST /v1/wallets/{walletID}/goals/{goalID}/redeem", h.handleRedeemGoal)
	mux.HandleFunc("DELETE /v1/wallets/{walletID}/goals/{goalID}", h.handleDeleteGoal)
	mux.HandleFunc("GET /v1/wallets/{walletID}/goals/{goalID}/transactions", h.handleListGoalTransactions)
}

func (h *WalletHandler) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := h.createWallet.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *WalletHandler) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getWallet.Execute(r.Context(), dto.GetWalletRequest{
		WalletID: r.PathValue("walletID"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleCredit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.WalletID = r.PathValue("walletID")

	resp, err := h.creditWallet.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleDebit(w http.ResponseWriter, r *http.Request) {
	var req dto.DebitWalletRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.WalletID = r.PathValue("walletID")

	resp, err := h.debitWallet.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	req := dto.ListTransactionsRequest{WalletID: r.PathValue("walletID")}

	if since := r.URL.Query().Get("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "since must be RFC 3339"})
			return
		}
		req.Since = ts
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
			return
		}
		req.Limit = n
	}

	resp, err := h.listTransactions.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleListGoalTransactions(w http.ResponseWriter, r *http.Request) {
	req := dto.ListGoalTransactionsRequest{
		WalletID: r.PathValue("walletID"),
		GoalID:   r.PathValue("goalID"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
			return
		}
		req.Limit = n
	}

	resp, err := h.listGoalTxns.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.WalletID = r.PathValue("walletID")

	resp, err := h.createGoal.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *WalletHandler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listGoals.Execute(r.Context(), r.PathValue("walletID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleAddToGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.AddToGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.WalletID = r.PathValue("walletID")
	req.GoalID = r.PathValue("goalID")

	resp, err := h.addToGoal.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleRedeemGoal(w http.ResponseWriter, r *http.Request) {
	resp, err := h.redeemGoal.Execute(r.Context(), dto.RedeemGoalRequest{
		WalletID: r.PathValue("walletID"),
		GoalID:   r.PathValue("goalID"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WalletHandler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	resp, err := h.deleteGoal.Execute(r.Context(), dto.DeleteGoalRequest{
		WalletID: r.PathValue("walletID"),
		GoalID:   r.PathValue("goalID"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
