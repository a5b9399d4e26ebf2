package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/delivery/http/dto"
	"stocksim/internal/middleware"
	"stocksim/internal/service"
)

// PortfolioHandler handles the index and history views
type PortfolioHandler struct {
	portfolio *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolio *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// Index returns cash, holdings with live valuations and the account total
// GET /api/portfolio
func (h *PortfolioHandler) Index(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	// One live quote per held symbol; allow for slow provider responses.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	view, err := h.portfolio.IndexView(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to build portfolio view")
	}

	out := dto.PortfolioOutput{
		Cash:       view.Cash.StringFixed(2),
		Holdings:   make([]dto.HoldingOutput, 0, len(view.Holdings)),
		TotalValue: view.TotalValue.StringFixed(2),
	}

	for _, holding := range view.Holdings {
		row := dto.HoldingOutput{
			Symbol: holding.Symbol,
			Shares: holding.Shares,
			Name:   holding.Name,
		}
		if holding.Price != nil {
			price := holding.Price.StringFixed(2)
			row.Price = &price
		}
		if holding.Value != nil {
			value := holding.Value.StringFixed(2)
			row.Value = &value
		}
		out.Holdings = append(out.Holdings, row)
	}

	return SuccessResponse(c, out)
}

// History returns every ledger entry with resolved company names
// GET /api/history
func (h *PortfolioHandler) History(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	entries, err := h.portfolio.HistoryView(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to build history view")
	}

	out := make([]dto.HistoryEntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.HistoryEntryOutput{
			Symbol:    entry.Symbol,
			Name:      entry.Name,
			Shares:    entry.Shares,
			Price:     entry.Price.StringFixed(2),
			Timestamp: entry.Timestamp.Format(time.RFC3339),
		})
	}

	return SuccessResponse(c, map[string]interface{}{"transactions": out})
}
