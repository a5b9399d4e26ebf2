package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocksim/internal/domain"
)

// TradingService validates and executes buy and sell orders. Each call is
// a single validate → quote → check → commit transition: the quote is
// fetched before the store transaction opens, the sufficiency checks run
// first against a plain read for a fast rejection, and the executor
// re-validates under a row lock before anything is written.
type TradingService struct {
	users        domain.UserRepository
	transactions domain.TransactionRepository
	trades       domain.TradeExecutor
	quotes       domain.QuoteProvider
}

// NewTradingService creates a new TradingService
func NewTradingService(
	users domain.UserRepository,
	transactions domain.TransactionRepository,
	trades domain.TradeExecutor,
	quotes domain.QuoteProvider,
) *TradingService {
	return &TradingService{
		users:        users,
		transactions: transactions,
		trades:       trades,
		quotes:       quotes,
	}
}

// Buy purchases shares at the current quoted price. Fails with
// ErrInvalidQuantity, ErrUnknownSymbol or ErrInsufficientFunds before any
// mutation; on success the cash debit and the ledger entry commit
// together.
func (s *TradingService) Buy(ctx context.Context, userID uuid.UUID, symbol, sharesInput string) (*domain.Transaction, error) {
	shares, err := parseShares(sharesInput)
	if err != nil {
		return nil, err
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	totalCost := quote.Price.Mul(decimal.NewFromInt(shares))

	cash, err := s.users.Cash(ctx, userID)
	if err != nil {
		return nil, err
	}
	if totalCost.GreaterThan(cash) {
		return nil, domain.ErrInsufficientFunds
	}

	return s.trades.ExecuteTrade(ctx, userID, quote.Symbol, shares, quote.Price)
}

// Sell liquidates shares at the current quoted price. Fails with
// ErrInvalidQuantity, ErrUnknownSymbol or ErrInsufficientShares before
// any mutation; on success the cash credit and the negative-share ledger
// entry commit together.
func (s *TradingService) Sell(ctx context.Context, userID uuid.UUID, symbol, sharesInput string) (*domain.Transaction, error) {
	shares, err := parseShares(sharesInput)
	if err != nil {
		return nil, err
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	held, err := s.transactions.SumSharesBySymbol(ctx, userID, quote.Symbol)
	if err != nil {
		return nil, err
	}
	if held < shares {
		return nil, domain.ErrInsufficientShares
	}

	return s.trades.ExecuteTrade(ctx, userID, quote.Symbol, -shares, quote.Price)
}

// lookup resolves a symbol for trading. Any provider failure, including
// a quote without a price, is ErrUnknownSymbol: the order never proceeds
// on a symbol the provider could not price.
func (s *TradingService) lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, domain.ErrSymbolRequired
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, domain.ErrUnknownSymbol
	}

	return quote, nil
}

func parseShares(input string) (int64, error) {
	shares, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || shares <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return shares, nil
}
