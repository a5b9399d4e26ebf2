package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocksim/internal/domain"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := f.byUsername[user.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	// The store seeds cash and created_at.
	user.Cash = domain.StartingCash
	user.CreatedAt = time.Now()
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Cash(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	user, err := f.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Cash, nil
}

func TestRegisterValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(repo)
	ctx := context.Background()

	tests := []struct {
		name         string
		username     string
		password     string
		confirmation string
		wantErr      error
	}{
		{"missing username", "", "secret1", "secret1", domain.ErrUsernameRequired},
		{"missing password", "alice", "", "secret1", domain.ErrPasswordRequired},
		{"missing confirmation", "alice", "secret1", "", domain.ErrConfirmationRequired},
		{"mismatched confirmation", "alice", "secret1", "secret2", domain.ErrPasswordMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password, tc.confirmation)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}

	if len(repo.byUsername) != 0 {
		t.Errorf("rejected registrations inserted %d rows", len(repo.byUsername))
	}
}

func TestRegisterSeedsStartingCash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(repo)

	user, err := svc.Register(context.Background(), "alice", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !user.Cash.Equal(domain.StartingCash) {
		t.Errorf("new user cash = %s, want %s", user.Cash, domain.StartingCash)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Errorf("password stored without hashing")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret1", "secret1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register(ctx, "alice", "other", "other")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("second registration: got %v, want ErrDuplicateUsername", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAccountService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "secret1", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("authenticated wrong user: %s", user.ID)
	}

	// Unknown user and wrong password are indistinguishable.
	for _, tc := range []struct{ username, password string }{
		{"alice", "wrong"},
		{"bob", "secret1"},
		{"", "secret1"},
		{"alice", ""},
	} {
		_, err := svc.Authenticate(ctx, tc.username, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("authenticate(%q, %q): got %v, want ErrInvalidCredentials", tc.username, tc.password, err)
		}
	}
}
