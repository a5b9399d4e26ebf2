package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one immutable ledger entry. Positive shares record a buy,
// negative shares record a sell. Price is the quoted price at execution
// time and is never recomputed. Rows are append-only: there are no updates
// or deletes, and a user's position in a symbol is always the sum of its
// rows.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Symbol    string          `json:"symbol"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// Amount is the cash value of the entry: shares × price. Positive for a
// buy (cash out), negative for a sell (cash in).
func (t *Transaction) Amount() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Shares))
}

// Holding is a derived view of a user's position in one symbol. It is
// recomputed from the ledger on every read and never persisted. Name,
// Price and Value are nil when the live quote lookup failed; the row is
// still reported.
type Holding struct {
	Symbol string           `json:"symbol"`
	Shares int64            `json:"shares"`
	Name   *string          `json:"name,omitempty"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Value  *decimal.Decimal `json:"value,omitempty"`
}

// PortfolioView is the index page payload: cash, per-symbol holdings and
// the total account value (cash plus every holding with a live price).
type PortfolioView struct {
	Cash       decimal.Decimal `json:"cash"`
	Holdings   []Holding       `json:"holdings"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// HistoryEntry is one row of the transaction history view. Name is
// resolved per row from the quote provider and falls back to "Unknown".
type HistoryEntry struct {
	Symbol    string          `json:"symbol"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
	Name      string          `json:"name"`
}
