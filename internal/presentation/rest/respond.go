package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	lendingmodel "github.com/nestfin/nestfin/internal/lending/domain/model"
	"github.com/nestfin/nestfin/internal/lending/domain/valueobject"
	walletmodel "github.com/nestfin/nestfin/internal/wallet/domain/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain errors to HTTP status codes. Typed precondition
// failures are client errors; anything unrecognised is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, walletmodel.ErrInsufficientFunds):
		status = http.StatusConflict
	case errors.Is(err, walletmodel.ErrTargetNotFound),
		errors.Is(err, lendingmodel.ErrLoanNotFound):
		status = http.StatusNotFound
	case errors.Is(err, walletmodel.ErrOwnershipMismatch):
		status = http.StatusForbidden
	case errors.Is(err, walletmodel.ErrGoalNotComplete):
		status = http.StatusConflict
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		status = http.StatusConflict
	case errors.Is(err, lendingmodel.ErrNoLoans),
		errors.Is(err, lendingmodel.ErrBudgetBelowMinimums),
		errors.Is(err, lendingmodel.ErrSimulationDiverged):
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
