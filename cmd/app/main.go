package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"stocksim/configs"
	"stocksim/internal/database"
	delivery "stocksim/internal/delivery/http"
	"stocksim/internal/infra"
	"stocksim/internal/middleware"
	"stocksim/internal/repository"
	"stocksim/internal/service"
	"stocksim/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	tradeRepo := repository.NewTradeRepository(db)

	// Initialize services
	quoteService := service.NewQuoteService(cfg.Quote.BaseURL)
	accountService := service.NewAccountService(userRepo)
	portfolioService := service.NewPortfolioService(userRepo, transactionRepo, quoteService)
	tradingService := usecase.NewTradingService(userRepo, transactionRepo, tradeRepo, quoteService)

	// Sessions
	sessions := middleware.NewSessionManager(cfg.Auth.SessionSecret)

	// Initialize HTTP router
	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:      delivery.NewAuthHandler(accountService, sessions),
		TradeHandler:     delivery.NewTradeHandler(tradingService, portfolioService, quoteService),
		PortfolioHandler: delivery.NewPortfolioHandler(portfolioService),
		Sessions:         sessions,
		DBPinger:         db,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("stocksim starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Quote provider: %s", cfg.Quote.BaseURL)

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
