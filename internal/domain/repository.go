package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user. The store seeds the cash column with its
	// default; the inserted user's Cash and CreatedAt are populated on
	// return. Returns ErrDuplicateUsername when the username is taken.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound
	// when no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Cash returns the user's current cash balance
	Cash(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// TransactionRepository defines read access to the append-only ledger.
// Writes go through TradeExecutor so the cash adjustment and the ledger
// append commit as one unit.
type TransactionRepository interface {
	// List retrieves all ledger entries for a user in insertion order
	List(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)

	// SumShares returns the net share count per symbol for a user,
	// including symbols whose total is zero or negative
	SumShares(ctx context.Context, userID uuid.UUID) (map[string]int64, error)

	// SumSharesBySymbol returns the net share count for one symbol
	SumSharesBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (int64, error)
}

// TradeExecutor commits one trade as a single atomic unit of work: the
// cash adjustment and the ledger append either both land or neither does.
// It re-validates funds and held shares under a row lock on the user, so
// two racing requests from the same user cannot overdraw cash or shares.
type TradeExecutor interface {
	// ExecuteTrade adjusts the user's cash by -(shares × price) and
	// appends the matching ledger entry. Negative shares record a sell.
	// Returns ErrInsufficientFunds or ErrInsufficientShares without any
	// mutation when the checks fail.
	ExecuteTrade(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price decimal.Decimal) (*Transaction, error)
}
