package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write error response")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}

// writeOperationError maps ledger errors onto HTTP statuses. Unrecognized
// errors become 500s with a generic message so internals do not leak.
func writeOperationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrAmountOutOfRange):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrNoYieldAvailable):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrSwapFailed):
		writeError(w, r, http.StatusBadGateway, err.Error())
	case errors.Is(err, ledger.ErrUnauthorized):
		writeError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, ledger.ErrOperationDisabled):
		writeError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, ledger.ErrAlreadyInitialized):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrNotInitialized):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Operation failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
