package handler

import (
	"net/http"
	"strconv"

	"pandar-wallet/internal/errors"
	"pandar-wallet/internal/service"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
	defaultLimit       int
	maxLimit           int
}

func NewTransactionHandler(transactionService *service.TransactionService, defaultLimit, maxLimit int) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		defaultLimit:       defaultLimit,
		maxLimit:           maxLimit,
	}
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	page, appErr := queryInt(r, "page", 1)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	limit, appErr := queryInt(r, "limit", h.defaultLimit)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	if page < 1 {
		writeError(w, errors.NewAppError(errors.ValidationError, "page must be a positive integer"))
		return
	}
	if limit < 1 || limit > h.maxLimit {
		writeError(w, errors.NewAppErrorf(errors.ValidationError, "limit must be between 1 and %d", h.maxLimit))
		return
	}

	result := h.transactionService.GetTransactions(UserID(r), page, limit)
	writeJSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, name string, fallback int) (int, *errors.AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewAppErrorf(errors.ValidationError, "%s must be a positive integer", name)
	}
	return v, nil
}
