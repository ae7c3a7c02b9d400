package domain

import "time"

// EntryType is the accounting side of a ledger entry. A DEBIT reduces the
// account, a CREDIT increases it.
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// TransactionType is the direction of a wallet operation from the owning
// user's perspective.
type TransactionType string

const (
	TransactionCredit   TransactionType = "credit"
	TransactionWithdraw TransactionType = "withdraw"
)

// LedgerEntry is one half of a double-entry transaction. The journal is
// append-only; entries are never rewritten or removed. Amounts are in kobo.
type LedgerEntry struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	Type          EntryType `json:"type"`
	Amount        int64     `json:"amount"`
	BalanceAfter  int64     `json:"balance_after"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// Transaction aggregates the two ledger entries of one wallet operation.
// BalanceAfter is the user-side balance once both entries were applied.
type Transaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	Reference    string          `json:"reference"`
	BalanceAfter int64           `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}
