package service

import (
	"log/slog"
	"time"

	"pandar-wallet/internal/domain"
	"pandar-wallet/internal/store"
)

type TransactionService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewTransactionService(store *store.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

type TransactionView struct {
	ID        string                 `json:"id"`
	Type      domain.TransactionType `json:"type"`
	Amount    int64                  `json:"amount"`
	Reference string                 `json:"reference"`
	CreatedAt time.Time              `json:"created_at"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

type TransactionPage struct {
	Transactions []TransactionView `json:"transactions"`
	Pagination   Pagination        `json:"pagination"`
}

// GetTransactions returns one page of the user's history, most recent
// first. page and limit must already be validated as positive.
func (s *TransactionService) GetTransactions(userID string, page, limit int) *TransactionPage {
	all := s.store.Ledger.GetUserTransactions(userID)

	views := make([]TransactionView, 0, len(all))
	for _, tx := range all {
		views = append(views, TransactionView{
			ID:        tx.ID,
			Type:      tx.Type,
			Amount:    tx.Amount,
			Reference: tx.Reference,
			CreatedAt: tx.CreatedAt,
		})
	}

	totalItems := len(views)
	totalPages := (totalItems + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > totalItems {
		start = totalItems
	}
	end := start + limit
	if end > totalItems {
		end = totalItems
	}

	return &TransactionPage{
		Transactions: views[start:end],
		Pagination: Pagination{
			Page:        page,
			Limit:       limit,
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
}
