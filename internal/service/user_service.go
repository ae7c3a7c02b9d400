package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pandar-wallet/internal/auth"
	"pandar-wallet/internal/config"
	"pandar-wallet/internal/domain"
	"pandar-wallet/internal/errors"
	"pandar-wallet/internal/store"
)

type UserService struct {
	store  *store.Store
	tokens *auth.Manager
	cfg    *config.Config
	logger *slog.Logger
}

func NewUserService(store *store.Store, tokens *auth.Manager, cfg *config.Config, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

type CreatedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Balance   int64     `json:"balance"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser registers the user, opens their wallet and credits the
// configured welcome balance as a regular deposit so the journal stays
// balanced from the first entry.
func (s *UserService) CreateUser(email string) (*CreatedUser, error) {
	userID := uuid.New().String()
	now := time.Now().UTC()

	if err := s.store.Users.Create(domain.User{ID: userID, Email: email, CreatedAt: now}); err != nil {
		return nil, err
	}

	s.store.Ledger.InitAccount(userID, 0)

	transactionID := uuid.New().String()
	s.store.Ledger.RecordDeposit(userID, s.cfg.InitialBalance, transactionID, "initial_"+transactionID[:8], now)

	token, err := s.tokens.Sign(userID)
	if err != nil {
		s.logger.Error("failed to sign token", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to issue token").WithDetails(err.Error())
	}

	s.logger.Info("user created", "user_id", userID, "email", email)

	return &CreatedUser{
		ID:        userID,
		Email:     email,
		Balance:   s.store.Ledger.GetBalance(userID),
		Token:     token,
		CreatedAt: now,
	}, nil
}
