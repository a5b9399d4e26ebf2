package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stocksim/internal/domain"
)

// QuoteService fetches live quotes over HTTP. The endpoint contract is
// GET {base}/quote?symbol=X returning {symbol, companyName, latestPrice}.
type QuoteService struct {
	httpClient *http.Client
	baseURL    string
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(baseURL string) *QuoteService {
	return &QuoteService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Lookup resolves a symbol to its current quote. Unknown symbols and
// quotes without a usable positive price both come back as
// ErrUnknownSymbol so callers have a single failure to handle.
func (s *QuoteService) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, domain.ErrUnknownSymbol
	}

	reqURL := fmt.Sprintf("%s/quote?symbol=%s", s.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrUnknownSymbol
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response: %w", err)
	}

	var payload struct {
		Symbol      string  `json:"symbol"`
		CompanyName string  `json:"companyName"`
		LatestPrice float64 `json:"latestPrice"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote response: %w", err)
	}

	price := decimal.NewFromFloat(payload.LatestPrice)
	if !price.IsPositive() {
		return nil, domain.ErrUnknownSymbol
	}

	quote := &domain.Quote{
		Symbol: payload.Symbol,
		Name:   payload.CompanyName,
		Price:  price,
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}

	return quote, nil
}
