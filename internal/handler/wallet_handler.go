package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"pandar-wallet/internal/errors"
	"pandar-wallet/internal/service"
)

const maxIdempotencyKeyLength = 256

type WalletHandler struct {
	walletService *service.WalletService
}

func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

type AmountRequest struct {
	Amount int64 `json:"amount"`
}

func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance := h.walletService.GetBalance(UserID(r))
	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

func (h *WalletHandler) AddBalance(w http.ResponseWriter, r *http.Request) {
	token, appErr := idempotencyToken(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	amount, appErr := parseAmount(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	tx, err := h.walletService.Deposit(UserID(r), amount, token)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			writeError(w, appErr)
		} else {
			writeError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred"))
		}
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	token, appErr := idempotencyToken(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	amount, appErr := parseAmount(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	tx, err := h.walletService.Withdraw(UserID(r), amount, token)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			writeError(w, appErr)
		} else {
			writeError(w, errors.NewAppError(errors.InternalError, "an unexpected error occurred"))
		}
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

func idempotencyToken(r *http.Request) (string, *errors.AppError) {
	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key == "" {
		return "", errors.NewAppError(errors.MissingIdempotencyKey, "Idempotency-Key header is required")
	}
	if len(key) > maxIdempotencyKeyLength {
		return "", errors.NewAppError(errors.InvalidIdempotencyKey, "Idempotency-Key must be 256 characters or less")
	}
	return key, nil
}

// parseAmount rejects anything that is not a positive integer, so the
// ledger below never sees an amount it would have to defend against.
func parseAmount(r *http.Request) (int64, *errors.AppError) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, errors.NewAppError(errors.InvalidJSON, "invalid JSON in request body")
	}
	if req.Amount < 1 {
		return 0, errors.NewAppError(errors.ValidationError, "amount must be a positive integer")
	}
	return req.Amount, nil
}
