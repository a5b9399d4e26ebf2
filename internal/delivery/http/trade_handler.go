package http

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stocksim/internal/delivery/http/dto"
	"stocksim/internal/domain"
	"stocksim/internal/middleware"
	"stocksim/internal/service"
	"stocksim/internal/usecase"
)

// TradeHandler handles quote lookups and buy/sell orders
type TradeHandler struct {
	trading   *usecase.TradingService
	portfolio *service.PortfolioService
	quotes    domain.QuoteProvider
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(trading *usecase.TradingService, portfolio *service.PortfolioService, quotes domain.QuoteProvider) *TradeHandler {
	return &TradeHandler{
		trading:   trading,
		portfolio: portfolio,
		quotes:    quotes,
	}
}

// Quote looks up the current price for a symbol
// GET /api/quote?symbol=X
func (h *TradeHandler) Quote(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return BadRequestResponse(c, domain.ErrSymbolRequired.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	quote, err := h.quotes.Lookup(ctx, symbol)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSymbol) {
			return BadRequestResponse(c, err.Error())
		}
		return InternalServerErrorResponse(c, "Failed to look up quote")
	}

	return SuccessResponse(c, dto.QuoteOutput{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Price:  quote.Price.StringFixed(2),
	})
}

// Buy executes a purchase at the current quoted price
// POST /api/trade/buy
func (h *TradeHandler) Buy(c echo.Context) error {
	return h.trade(c, "Purchased successfully", h.trading.Buy)
}

// Sell executes a sale at the current quoted price
// POST /api/trade/sell
func (h *TradeHandler) Sell(c echo.Context) error {
	return h.trade(c, "Sold successfully", h.trading.Sell)
}

// Symbols lists the symbols the user currently holds, for the sell form
// GET /api/trade/symbols
func (h *TradeHandler) Symbols(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	symbols, err := h.portfolio.HeldSymbols(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to list held symbols")
	}

	return SuccessResponse(c, map[string][]string{"symbols": symbols})
}

type tradeFunc func(ctx context.Context, userID uuid.UUID, symbol, shares string) (*domain.Transaction, error)

func (h *TradeHandler) trade(c echo.Context, message string, execute tradeFunc) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	// Budget covers the quote lookup plus the store transaction.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	txn, err := execute(ctx, userID, req.Symbol, req.Shares)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSymbolRequired),
			errors.Is(err, domain.ErrInvalidQuantity),
			errors.Is(err, domain.ErrUnknownSymbol),
			errors.Is(err, domain.ErrInsufficientFunds),
			errors.Is(err, domain.ErrInsufficientShares):
			return BadRequestResponse(c, err.Error())
		}
		return InternalServerErrorResponse(c, "Failed to execute trade")
	}

	return SuccessMessageResponse(c, message, dto.TransactionOutput{
		ID:        txn.ID.String(),
		Symbol:    txn.Symbol,
		Shares:    txn.Shares,
		Price:     txn.Price.StringFixed(2),
		Timestamp: txn.Timestamp.Format(time.RFC3339),
	})
}
