package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stocksim/internal/domain"
)

// TransactionRepositoryImpl implements the TransactionRepository interface
type TransactionRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) domain.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// List retrieves all ledger entries for a user in insertion order
func (r *TransactionRepositoryImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, shares, price, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		txn := &domain.Transaction{}
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Symbol,
			&txn.Shares,
			&txn.Price,
			&txn.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// SumShares returns the net share count per symbol for a user. Symbols
// whose rows sum to zero or below are included; callers decide whether a
// liquidated position is interesting.
func (r *TransactionRepositoryImpl) SumShares(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	query := `
		SELECT symbol, SUM(shares) AS total_shares
		FROM transactions
		WHERE user_id = $1
		GROUP BY symbol
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum shares: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var symbol string
		var total int64
		if err := rows.Scan(&symbol, &total); err != nil {
			return nil, fmt.Errorf("failed to scan share total: %w", err)
		}
		totals[symbol] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating share totals: %w", err)
	}

	return totals, nil
}

// SumSharesBySymbol returns the net share count for one symbol
func (r *TransactionRepositoryImpl) SumSharesBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(shares), 0)
		FROM transactions
		WHERE user_id = $1 AND symbol = $2
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, userID, symbol).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum shares for symbol: %w", err)
	}

	return total, nil
}
