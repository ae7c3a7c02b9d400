package store

import (
	"fmt"
	"sync"
	"time"

	"pandar-wallet/internal/domain"
)

// SystemAccount absorbs the counterparty side of every user credit and
// debit. It may hold a negative balance.
const SystemAccount = "SYSTEM"

// LedgerStore keeps balances and an append-only double-entry journal in
// memory. Mutations are unconditional; business rules such as sufficient
// funds belong to the caller, which must evaluate them inside the same
// per-user critical section as the mutation.
//
// The internal mutex only keeps the maps safe under concurrent access
// from unrelated users. Execution-order guarantees for one user come
// from the LockManager, not from here.
type LedgerStore struct {
	mu               sync.RWMutex
	balances         map[string]int64
	entries          []domain.LedgerEntry
	userTransactions map[string][]domain.Transaction
}

func NewLedgerStore() *LedgerStore {
	s := &LedgerStore{}
	s.Reset()
	return s
}

// InitAccount creates the account if absent. Re-initialization is a no-op.
func (s *LedgerStore) InitAccount(accountID string, initialBalance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[accountID]; !ok {
		s.balances[accountID] = initialBalance
	}
}

// GetBalance returns 0 for accounts that were never initialized.
func (s *LedgerStore) GetBalance(accountID string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.balances[accountID]
}

func (s *LedgerStore) Credit(accountID string, amount int64, transactionID, description string, createdAt time.Time) domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendEntry(accountID, domain.EntryCredit, amount, transactionID, description, createdAt)
}

func (s *LedgerStore) Debit(accountID string, amount int64, transactionID, description string, createdAt time.Time) domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendEntry(accountID, domain.EntryDebit, amount, transactionID, description, createdAt)
}

// appendEntry mutates the balance and records the journal entry carrying
// the post-mutation balance. Callers must hold s.mu.
func (s *LedgerStore) appendEntry(accountID string, entryType domain.EntryType, amount int64, transactionID, description string, createdAt time.Time) domain.LedgerEntry {
	newBalance := s.balances[accountID]
	if entryType == domain.EntryCredit {
		newBalance += amount
	} else {
		newBalance -= amount
	}
	s.balances[accountID] = newBalance

	entry := domain.LedgerEntry{
		ID:            fmt.Sprintf("le-%d", len(s.entries)+1),
		TransactionID: transactionID,
		AccountID:     accountID,
		Type:          entryType,
		Amount:        amount,
		BalanceAfter:  newBalance,
		Description:   description,
		CreatedAt:     createdAt,
	}
	s.entries = append(s.entries, entry)
	return entry
}

// RecordDeposit moves amount from the system account to the user. Both
// entries share transactionID; the system side is debited first so the
// pair appears in the journal before the user balance moves.
func (s *LedgerStore) RecordDeposit(userID string, amount int64, transactionID, reference string, createdAt time.Time) *domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendEntry(SystemAccount, domain.EntryDebit, amount, transactionID, "Deposit to "+userID, createdAt)
	s.appendEntry(userID, domain.EntryCredit, amount, transactionID, "Deposit from SYSTEM", createdAt)

	return s.recordTransaction(userID, domain.TransactionCredit, amount, transactionID, reference, createdAt)
}

// RecordWithdrawal mirrors RecordDeposit: the user is debited, the system
// account credited. It does not check funds; that is the caller's job.
func (s *LedgerStore) RecordWithdrawal(userID string, amount int64, transactionID, reference string, createdAt time.Time) *domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendEntry(userID, domain.EntryDebit, amount, transactionID, "Withdrawal by "+userID, createdAt)
	s.appendEntry(SystemAccount, domain.EntryCredit, amount, transactionID, "Withdrawal from "+userID, createdAt)

	return s.recordTransaction(userID, domain.TransactionWithdraw, amount, transactionID, reference, createdAt)
}

// recordTransaction prepends the transaction to the user's history so the
// list stays most-recent-first. Callers must hold s.mu.
func (s *LedgerStore) recordTransaction(userID string, txType domain.TransactionType, amount int64, transactionID, reference string, createdAt time.Time) *domain.Transaction {
	tx := domain.Transaction{
		ID:           transactionID,
		UserID:       userID,
		Type:         txType,
		Amount:       amount,
		Reference:    reference,
		BalanceAfter: s.balances[userID],
		CreatedAt:    createdAt,
	}
	s.userTransactions[userID] = append([]domain.Transaction{tx}, s.userTransactions[userID]...)
	return &tx
}

// GetUserTransactions returns the user's transactions most-recent-first.
// Unknown users get an empty slice.
func (s *LedgerStore) GetUserTransactions(userID string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txs := make([]domain.Transaction, len(s.userTransactions[userID]))
	copy(txs, s.userTransactions[userID])
	return txs
}

// Entries returns a copy of the full journal.
func (s *LedgerStore) Entries() []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.LedgerEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// VerifyIntegrity recomputes total debits and credits across the journal
// and asserts they match. Cheap global audit, not a per-request guard.
func (s *LedgerStore) VerifyIntegrity() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totalDebits, totalCredits int64
	for _, entry := range s.entries {
		if entry.Type == domain.EntryDebit {
			totalDebits += entry.Amount
		} else {
			totalCredits += entry.Amount
		}
	}
	return totalDebits == totalCredits
}

// Reset clears all state and re-establishes the system account at zero.
// Used between test runs, never during normal operation.
func (s *LedgerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances = map[string]int64{SystemAccount: 0}
	s.entries = nil
	s.userTransactions = make(map[string][]domain.Transaction)
}
