package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pandar-wallet/internal/domain"
	"pandar-wallet/internal/errors"
	"pandar-wallet/internal/store"
)

// Operation names scoping idempotency keys, so a deposit token can never
// collide with a withdrawal token.
const (
	opDeposit  = "deposit"
	opWithdraw = "withdraw"
)

// WalletService coordinates mutating wallet operations: per-user lock,
// then idempotency cache, then business rules, then the ledger. The
// funds check and the ledger mutation share one critical section, so two
// concurrent withdrawals for the same user cannot both observe a
// sufficient balance.
type WalletService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewWalletService(store *store.Store, logger *slog.Logger) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
	}
}

func (s *WalletService) GetBalance(userID string) int64 {
	return s.store.Ledger.GetBalance(userID)
}

// Deposit credits the user's wallet. amount must already be validated as
// a positive integer by the caller.
func (s *WalletService) Deposit(userID string, amount int64, idempotencyToken string) (*domain.Transaction, error) {
	var result *domain.Transaction

	err := s.store.Locks.WithLock(userID, func() error {
		key := s.store.Idempotency.BuildKey(userID, opDeposit, idempotencyToken)
		if cached, ok := s.store.Idempotency.Get(key); ok {
			s.logger.Info("idempotent replay", "user_id", userID, "operation", opDeposit)
			result = cached.Transaction
			return nil
		}

		transactionID := uuid.New().String()
		now := time.Now().UTC()
		tx := s.store.Ledger.RecordDeposit(userID, amount, transactionID, "dep_"+transactionID[:8], now)

		s.store.Idempotency.Set(key, store.CachedResult{Transaction: tx, CreatedAt: now})
		result = tx

		s.logger.Info("deposit recorded", "user_id", userID, "amount", amount, "transaction_id", transactionID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Withdraw debits the user's wallet after checking funds inside the
// critical section. Failed checks are not cached, so a retry with the
// same token re-attempts against the then-current balance.
func (s *WalletService) Withdraw(userID string, amount int64, idempotencyToken string) (*domain.Transaction, error) {
	var result *domain.Transaction

	err := s.store.Locks.WithLock(userID, func() error {
		key := s.store.Idempotency.BuildKey(userID, opWithdraw, idempotencyToken)
		if cached, ok := s.store.Idempotency.Get(key); ok {
			s.logger.Info("idempotent replay", "user_id", userID, "operation", opWithdraw)
			result = cached.Transaction
			return nil
		}

		if s.store.Ledger.GetBalance(userID) < amount {
			s.logger.Warn("withdrawal rejected", "user_id", userID, "amount", amount)
			return errors.ErrInsufficientFunds
		}

		transactionID := uuid.New().String()
		now := time.Now().UTC()
		tx := s.store.Ledger.RecordWithdrawal(userID, amount, transactionID, "wth_"+transactionID[:8], now)

		s.store.Idempotency.Set(key, store.CachedResult{Transaction: tx, CreatedAt: now})
		result = tx

		s.logger.Info("withdrawal recorded", "user_id", userID, "amount", amount, "transaction_id", transactionID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
