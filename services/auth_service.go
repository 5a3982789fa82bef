package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/esg-data-management/internal/clock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks user credentials and maintains the bootstrap account
type AuthService struct {
	users     repositories.UserRepository
	txMgr     repositories.TransactionManager
	clock     clock.Clock
	cost      int
	dummyHash []byte
	compare   func(hash, password []byte) error
	logger    *zap.Logger
}

// dummyPassword is hashed once so failed lookups cost as much as a real compare.
const dummyPassword = "no-such-user-placeholder"

// NewAuthService creates a new AuthService instance
func NewAuthService(users repositories.UserRepository, txMgr repositories.TransactionManager, clk clock.Clock, logger *zap.Logger) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Warn("failed to prepare dummy password hash", zap.Error(err))
	}
	return &AuthService{
		users:     users,
		txMgr:     txMgr,
		clock:     clk,
		cost:      bcrypt.DefaultCost,
		dummyHash: dummy,
		compare:   bcrypt.CompareHashAndPassword,
		logger:    logger,
	}
}

// Authenticate returns the active user matching the credentials, or
// ErrInvalidCredentials
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = s.compare(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, WrapInternal("failed to load user", err)
	}

	if !user.IsActive {
		_ = s.compare(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := s.compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// EnsureUser creates the user if missing, or resets its password when the
// stored hash no longer matches
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return NewFieldError("username", "Username and password are required.")
	}

	return WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		user, err := s.users.GetByUsername(ctx, username)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			hash, err := s.hash(password)
			if err != nil {
				return err
			}
			user = models.NewUser(username, hash, s.clock.Now())
			if err := s.users.Create(ctx, user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			s.logger.Info("bootstrap user created", zap.String("username", username), zap.Int64("user_id", user.ID))
			return nil
		case err != nil:
			return fmt.Errorf("failed to load user: %w", err)
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
			return nil
		}

		hash, err := s.hash(password)
		if err != nil {
			return err
		}
		if err := s.users.UpdatePassword(ctx, user.ID, hash, s.clock.Now()); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		s.logger.Info("bootstrap user password updated", zap.String("username", username))
		return nil
	})
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
