package service

import (
	"context"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocksim/internal/domain"
)

// historyNameFallback is rendered when the quote provider cannot resolve
// a company name for a history row.
const historyNameFallback = "Unknown"

// PortfolioService derives holdings from the ledger and composes them
// with live quotes into the index and history views. It is read-only:
// positions are recomputed from the transaction sums on every call and
// never cached or persisted.
type PortfolioService struct {
	users        domain.UserRepository
	transactions domain.TransactionRepository
	quotes       domain.QuoteProvider
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(users domain.UserRepository, transactions domain.TransactionRepository, quotes domain.QuoteProvider) *PortfolioService {
	return &PortfolioService{
		users:        users,
		transactions: transactions,
		quotes:       quotes,
	}
}

// Holdings returns the user's current share count per symbol, dropping
// symbols that are fully liquidated or were never held. Pure aggregation
// over the ledger; no quote lookups.
func (s *PortfolioService) Holdings(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	totals, err := s.transactions.SumShares(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings := make(map[string]int64, len(totals))
	for symbol, shares := range totals {
		if shares > 0 {
			holdings[symbol] = shares
		}
	}

	return holdings, nil
}

// HeldSymbols returns the symbols the user currently holds, sorted. Used
// by the sell form to offer only positions that can actually be sold.
func (s *PortfolioService) HeldSymbols(ctx context.Context, userID uuid.UUID) ([]string, error) {
	holdings, err := s.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(holdings))
	for symbol := range holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	return symbols, nil
}

// IndexView builds the portfolio overview: cash, every held symbol with
// its live valuation, and the account total. A failed quote lookup keeps
// the holding listed without name/price/value instead of failing the
// whole view; such rows are excluded from the total.
func (s *PortfolioService) IndexView(ctx context.Context, userID uuid.UUID) (*domain.PortfolioView, error) {
	cash, err := s.users.Cash(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(holdings))
	for symbol := range holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	view := &domain.PortfolioView{
		Cash:       cash,
		Holdings:   make([]domain.Holding, 0, len(symbols)),
		TotalValue: cash,
	}

	for _, symbol := range symbols {
		holding := domain.Holding{
			Symbol: symbol,
			Shares: holdings[symbol],
		}

		quote, err := s.quotes.Lookup(ctx, symbol)
		if err != nil {
			log.Printf("WARNING: quote lookup failed for held symbol %s: %v", symbol, err)
		} else {
			value := quote.Price.Mul(decimal.NewFromInt(holding.Shares))
			holding.Name = &quote.Name
			holding.Price = &quote.Price
			holding.Value = &value
			view.TotalValue = view.TotalValue.Add(value)
		}

		view.Holdings = append(view.Holdings, holding)
	}

	return view, nil
}

// HistoryView returns every ledger entry in insertion order with the
// company name resolved per row. Unresolved names render as "Unknown".
func (s *PortfolioService) HistoryView(ctx context.Context, userID uuid.UUID) ([]domain.HistoryEntry, error) {
	transactions, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Each symbol is resolved once even if it appears in many rows.
	names := make(map[string]string)

	entries := make([]domain.HistoryEntry, 0, len(transactions))
	for _, txn := range transactions {
		name, ok := names[txn.Symbol]
		if !ok {
			name = historyNameFallback
			if quote, err := s.quotes.Lookup(ctx, txn.Symbol); err == nil {
				name = quote.Name
			}
			names[txn.Symbol] = name
		}

		entries = append(entries, domain.HistoryEntry{
			Symbol:    txn.Symbol,
			Shares:    txn.Shares,
			Price:     txn.Price,
			Timestamp: txn.Timestamp,
			Name:      name,
		})
	}

	return entries, nil
}
