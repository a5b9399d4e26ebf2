package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "stocksim/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler      *AuthHandler
	TradeHandler     *TradeHandler
	PortfolioHandler *PortfolioHandler
	Sessions         *custommiddleware.SessionManager
	DBPinger         interface{ Ping(context.Context) error }
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(custommiddleware.NoCache)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		dbStatus := "healthy"
		if err := config.DBPinger.Ping(ctx); err != nil {
			dbStatus = "unhealthy"
		}

		return SuccessResponse(c, map[string]interface{}{
			"status":   "healthy",
			"service":  "stocksim-api",
			"database": dbStatus,
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
	}

	// Authenticated routes
	user := api.Group("", config.Sessions.Auth)
	{
		user.GET("/portfolio", config.PortfolioHandler.Index)
		user.GET("/history", config.PortfolioHandler.History)
		user.GET("/quote", config.TradeHandler.Quote)
		user.POST("/trade/buy", config.TradeHandler.Buy)
		user.POST("/trade/sell", config.TradeHandler.Sell)
		user.GET("/trade/symbols", config.TradeHandler.Symbols)
	}
}
