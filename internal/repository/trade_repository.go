package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"stocksim/internal/domain"
)

// TradeRepositoryImpl implements the TradeExecutor interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeExecutor
func NewTradeRepository(db *pgxpool.Pool) domain.TradeExecutor {
	return &TradeRepositoryImpl{db: db}
}

// ExecuteTrade commits one trade atomically. The user row is locked for
// the duration of the transaction, so the sufficiency checks, the cash
// adjustment and the ledger append cannot interleave with another trade
// by the same user. Quotes are fetched by the caller before this runs;
// no network I/O happens while the lock is held.
func (r *TradeRepositoryImpl) ExecuteTrade(ctx context.Context, userID uuid.UUID, symbol string, shares int64, price decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin trade transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var cash decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT cash FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&cash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock user row: %w", err)
	}

	if shares < 0 {
		// Re-check the position under the lock: a concurrent sell may
		// have depleted it since the caller's check.
		var held int64
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(shares), 0) FROM transactions WHERE user_id = $1 AND symbol = $2`,
			userID, symbol,
		).Scan(&held)
		if err != nil {
			return nil, fmt.Errorf("failed to sum held shares: %w", err)
		}
		if held+shares < 0 {
			return nil, domain.ErrInsufficientShares
		}
	}

	// Buys move cash out, sells move cash in.
	newCash := cash.Sub(price.Mul(decimal.NewFromInt(shares)))
	if newCash.IsNegative() {
		return nil, domain.ErrInsufficientFunds
	}

	if err := adjustCash(ctx, tx, userID, newCash); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    symbol,
		Shares:    shares,
		Price:     price,
		Timestamp: time.Now(),
	}
	if err := appendTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit trade: %w", err)
	}

	return txn, nil
}

func adjustCash(ctx context.Context, tx pgx.Tx, userID uuid.UUID, newCash decimal.Decimal) error {
	_, err := tx.Exec(ctx, `UPDATE users SET cash = $1 WHERE id = $2`, newCash, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust cash: %w", err)
	}
	return nil
}

func appendTransaction(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, symbol, shares, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		txn.ID,
		txn.UserID,
		txn.Symbol,
		txn.Shares,
		txn.Price,
		txn.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}
