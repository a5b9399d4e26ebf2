package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stocksim/internal/domain"
)

// AccountService handles registration and login identity checks
type AccountService struct {
	users domain.UserRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(users domain.UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Register validates the fields, hashes the password and creates the
// user. No row is inserted when validation fails; a duplicate username
// fails atomically in the store. The new user starts with the store's
// default cash balance.
func (s *AccountService) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}
	if confirmation == "" {
		return nil, domain.ErrConfirmationRequired
	}
	if password != confirmation {
		return nil, domain.ErrPasswordMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashed),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate checks a username/password pair. A missing user and a
// wrong password both come back as ErrInvalidCredentials so the response
// does not reveal which usernames exist.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
