package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocksim/internal/domain"
)

type fakeTransactionRepo struct {
	entries []*domain.Transaction
}

func (f *fakeTransactionRepo) List(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	return f.entries, nil
}

func (f *fakeTransactionRepo) SumShares(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	totals := make(map[string]int64)
	for _, txn := range f.entries {
		totals[txn.Symbol] += txn.Shares
	}
	return totals, nil
}

func (f *fakeTransactionRepo) SumSharesBySymbol(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	totals, _ := f.SumShares(ctx, userID)
	return totals[symbol], nil
}

type stubQuoteProvider struct {
	quotes map[string]domain.Quote
}

func (s *stubQuoteProvider) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	quote, ok := s.quotes[symbol]
	if !ok {
		return nil, domain.ErrUnknownSymbol
	}
	return &quote, nil
}

func entry(symbol string, shares int64, price string, at time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:        uuid.New(),
		Symbol:    symbol,
		Shares:    shares,
		Price:     decimal.RequireFromString(price),
		Timestamp: at,
	}
}

func portfolioFixture(cash string, entries []*domain.Transaction, quotes map[string]domain.Quote) (*PortfolioService, uuid.UUID) {
	repo := newFakeUserRepo()
	user := &domain.User{ID: uuid.New(), Username: "alice"}
	repo.byUsername[user.Username] = user
	user.Cash = decimal.RequireFromString(cash)

	return NewPortfolioService(repo, &fakeTransactionRepo{entries: entries}, &stubQuoteProvider{quotes: quotes}), user.ID
}

func TestHoldingsFiltersLiquidatedPositions(t *testing.T) {
	now := time.Now()
	svc, userID := portfolioFixture("10000.00", []*domain.Transaction{
		entry("AAA", 10, "50.00", now),
		entry("BBB", 5, "20.00", now),
		entry("BBB", -5, "22.00", now),
		entry("CCC", 3, "10.00", now),
	}, nil)

	holdings, err := svc.Holdings(context.Background(), userID)
	if err != nil {
		t.Fatalf("Holdings failed: %v", err)
	}

	want := map[string]int64{"AAA": 10, "CCC": 3}
	if len(holdings) != len(want) {
		t.Fatalf("holdings = %v, want %v", holdings, want)
	}
	for symbol, shares := range want {
		if holdings[symbol] != shares {
			t.Errorf("holdings[%s] = %d, want %d", symbol, holdings[symbol], shares)
		}
	}
}

func TestIndexViewKeepsRowsWithFailedQuotes(t *testing.T) {
	now := time.Now()
	svc, userID := portfolioFixture("9500.00", []*domain.Transaction{
		entry("AAA", 10, "50.00", now),
		entry("ZZZ", 2, "100.00", now),
	}, map[string]domain.Quote{
		"AAA": {Symbol: "AAA", Name: "Triple A Corp", Price: decimal.RequireFromString("55.00")},
		// ZZZ has no live quote.
	})

	view, err := svc.IndexView(context.Background(), userID)
	if err != nil {
		t.Fatalf("IndexView failed: %v", err)
	}

	if len(view.Holdings) != 2 {
		t.Fatalf("view has %d holdings, want 2 (failed quote must not drop the row)", len(view.Holdings))
	}

	aaa, zzz := view.Holdings[0], view.Holdings[1]
	if aaa.Symbol != "AAA" || zzz.Symbol != "ZZZ" {
		t.Fatalf("holdings out of order: %s, %s", aaa.Symbol, zzz.Symbol)
	}

	if aaa.Name == nil || *aaa.Name != "Triple A Corp" {
		t.Errorf("AAA name not resolved")
	}
	if aaa.Value == nil || !aaa.Value.Equal(decimal.RequireFromString("550.00")) {
		t.Errorf("AAA value = %v, want 550.00", aaa.Value)
	}

	if zzz.Name != nil || zzz.Price != nil || zzz.Value != nil {
		t.Errorf("ZZZ should have no derived fields after a failed lookup")
	}

	// Total = cash + valued holdings; the unquoted row contributes nothing.
	if !view.TotalValue.Equal(decimal.RequireFromString("10050.00")) {
		t.Errorf("total value = %s, want 10050.00", view.TotalValue)
	}
	if !view.Cash.Equal(decimal.RequireFromString("9500.00")) {
		t.Errorf("cash = %s, want 9500.00", view.Cash)
	}
}

func TestHistoryViewResolvesNamesWithFallback(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, userID := portfolioFixture("10000.00", []*domain.Transaction{
		entry("AAA", 10, "50.00", base),
		entry("GONE", 2, "8.00", base.Add(time.Minute)),
		entry("AAA", -4, "60.00", base.Add(2*time.Minute)),
	}, map[string]domain.Quote{
		"AAA": {Symbol: "AAA", Name: "Triple A Corp", Price: decimal.RequireFromString("55.00")},
	})

	entries, err := svc.HistoryView(context.Background(), userID)
	if err != nil {
		t.Fatalf("HistoryView failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("history has %d rows, want 3", len(entries))
	}

	if entries[0].Name != "Triple A Corp" || entries[2].Name != "Triple A Corp" {
		t.Errorf("AAA rows have names %q, %q", entries[0].Name, entries[2].Name)
	}
	if entries[1].Name != "Unknown" {
		t.Errorf("delisted symbol name = %q, want Unknown", entries[1].Name)
	}

	// Insertion order, with the execution price of each row preserved.
	if entries[2].Shares != -4 || !entries[2].Price.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("sell row = %d shares at %s, want -4 at 60.00", entries[2].Shares, entries[2].Price)
	}
}
