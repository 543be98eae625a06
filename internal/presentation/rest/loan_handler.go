package rest

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nestfin/nestfin/internal/lending/application/dto"
	"github.com/nestfin/nestfin/internal/lending/application/usecase"
)

// LoanHandler exposes loan lifecycle and repayment planning over HTTP.
type LoanHandler struct {
	applyForLoan  *usecase.ApplyForLoanUseCase
	approveLoan   *usecase.ApproveLoanUseCase
	rejectLoan    *usecase.RejectLoanUseCase
	getLoan       *usecase.GetLoanUseCase
	listLoans     *usecase.ListLoansUseCase
	repayLoan     *usecase.RepayLoanUseCase
	calculatePlan *usecase.CalculateRepaymentPlanUseCase
	logger        *slog.Logger
}

// NewLoanHandler wires the lending use cases into an HTTP handler.
func NewLoanHandler(
	applyForLoan *usecase.ApplyForLoanUseCase,
	approveLoan *usecase.ApproveLoanUseCase,
	rejectLoan *usecase.RejectLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	listLoans *usecase.ListLoansUseCase,
	repayLoan *usecase.RepayLoanUseCase,
	calculatePlan *usecase.CalculateRepaymentPlanUseCase,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		applyForLoan:  applyForLoan,
		approveLoan:   approveLoan,
		rejectLoan:    rejectLoan,
		getLoan:       getLoan,
		listLoans:     listLoans,
		repayLoan:     repayLoan,
		calculatePlan: calculatePlan,
		logger:        logger,
	}
}

// RegisterRoutes attaches loan routes to the given mux.
func (h *LoanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/loans", h.handleApply)
	mux.HandleFunc("GET /v1/loans/{loanID}", h.handleGet)
	mux.HandleFunc("POST /v1/loans/{loanID}/approve", h.handleApprove)
	mux.HandleFunc("POST /v1/loans/{loanID}/reject", h.handleReject)
	mux.HandleFunc("POST /v1/loans/{loanID}/repayments", h.handleRepay)

	mux.HandleFunc("GET /v1/wallets/{walletID}/loans", h.handleList)
	mux.HandleFunc("GET /v1/wallets/{walletID}/repayment-plan", h.handlePlan)
}

func (h *LoanHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyForLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := h.applyForLoan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.getLoan.Execute(r.Context(), dto.GetLoanRequest{LoanID: r.PathValue("loanID")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) handleApprove(w http.ResponseWriter, r *http.Request) {
	resp, err := h.approveLoan.Execute(r.Context(), dto.ApproveLoanRequest{LoanID: r.PathValue("loanID")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	var req dto.RejectLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.LoanID = r.PathValue("loanID")

	resp, err := h.rejectLoan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) handleRepay(w http.ResponseWriter, r *http.Request) {
	var req dto.RepayLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.LoanID = r.PathValue("loanID")

	resp, err := h.repayLoan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) handleList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listLoans.Execute(r.Context(), dto.ListLoansRequest{
		WalletID: r.PathValue("walletID"),
		Status:   r.URL.Query().Get("status"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) handlePlan(w http.ResponseWriter, r *http.Request) {
	budget, err := decimal.NewFromString(r.URL.Query().Get("monthly_budget"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "monthly_budget must be a decimal number"})
		return
	}

	resp, err := h.calculatePlan.Execute(r.Context(), dto.CalculatePlanRequest{
		WalletID:      r.PathValue("walletID"),
		MonthlyBudget: budget,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
