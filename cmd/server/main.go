package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/controller"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/middleware"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/router"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/postgres"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/config"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/rates"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	store := postgres.NewStore(db)

	intakeService := services.NewIntakeService(store)
	settlementService := services.NewSettlementService(store)
	portfolioService := services.NewPortfolioService(store)
	rateService := services.NewRateService(rates.NewPrivatBankProvider(cfg.RatesURL))

	handler := router.New(
		controller.NewIntakeController(intakeService),
		controller.NewSettlementController(settlementService),
		controller.NewPortfolioController(portfolioService),
		controller.NewRateController(rateService),
		middleware.Principal,
		middleware.RequireRole,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("server stopped")
}
