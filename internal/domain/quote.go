package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time price for a symbol.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// QuoteProvider defines the interface for live price lookups
type QuoteProvider interface {
	// Lookup resolves a symbol to its current quote. Returns
	// ErrUnknownSymbol when the provider does not know the symbol or
	// cannot supply a positive price for it.
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}
