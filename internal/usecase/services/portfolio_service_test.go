package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/services"
)

func TestPortfolioReflectsHoldingsAndPendingFlags(t *testing.T) {
	store := newSeededStore()
	store.SeedDeposit(domain.Deposit{
		OwnerID:   7,
		Currency:  "UAH",
		Balance:   decimal.NewFromInt(3000),
		CreatedAt: time.Now().UTC().AddDate(0, 0, -10),
	})
	store.SeedCard(domain.Card{
		ID:       11,
		OwnerID:  7,
		Currency: "UAH",
		Balance:  decimal.NewFromInt(120),
	})
	intake := services.NewIntakeService(store)
	portfolio := services.NewPortfolioService(store)

	if _, err := intake.CreditCard(context.Background(), 7, 11, models.CardAmountRequest{
		Amount: decimal.NewFromInt(40),
	}); err != nil {
		t.Fatalf("credit card: %v", err)
	}

	resp, err := portfolio.Portfolio(context.Background(), 7)
	if err != nil {
		t.Fatalf("portfolio: %v", err)
	}

	view := resp.Data
	if !view.HasActiveDeposit || view.Deposit == nil {
		t.Fatal("expected an active deposit in the portfolio")
	}
	if view.Deposit.Balance != "3000.00" {
		t.Fatalf("deposit balance = %s, want 3000.00", view.Deposit.Balance)
	}
	if view.HasPendingDeposit {
		t.Fatal("no deposit request was filed")
	}
	if len(view.Cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(view.Cards))
	}
	if !view.Cards[0].PendingOperation {
		t.Fatal("expected the card's pending flag after the credit request")
	}
}

func TestPendingOperationsListsBothStreams(t *testing.T) {
	store := newSeededStore()
	store.SeedCard(domain.Card{
		ID:       11,
		OwnerID:  7,
		Currency: "UAH",
		Balance:  decimal.NewFromInt(120),
	})
	intake := services.NewIntakeService(store)
	portfolio := services.NewPortfolioService(store)

	if _, err := intake.OpenDeposit(context.Background(), 7, models.OpenDepositRequest{
		Currency: "UAH",
		Amount:   decimal.NewFromInt(500),
	}); err != nil {
		t.Fatalf("open deposit: %v", err)
	}
	if _, err := intake.CloseCard(context.Background(), 7, 11); err != nil {
		t.Fatalf("close card: %v", err)
	}

	resp, err := portfolio.PendingOperations(context.Background())
	if err != nil {
		t.Fatalf("pending operations: %v", err)
	}

	if len(resp.Data.DepositOperations) != 1 {
		t.Fatalf("deposit operations = %d, want 1", len(resp.Data.DepositOperations))
	}
	if len(resp.Data.CardOperations) != 1 {
		t.Fatalf("card operations = %d, want 1", len(resp.Data.CardOperations))
	}
	if resp.Data.CardOperations[0].Action != string(domain.CardActionCloseRequested) {
		t.Fatalf("card action = %s, want CLOSE_REQUESTED", resp.Data.CardOperations[0].Action)
	}
}

func TestPoolsListsSeededCurrencies(t *testing.T) {
	store := newSeededStore()
	store.SeedPool("USD", decimal.NewFromInt(25000))
	portfolio := services.NewPortfolioService(store)

	resp, err := portfolio.Pools(context.Background())
	if err != nil {
		t.Fatalf("pools: %v", err)
	}

	pools := *resp.Data
	if len(pools) != 2 {
		t.Fatalf("pools = %d, want 2", len(pools))
	}
	if pools[0].Currency != "UAH" || pools[1].Currency != "USD" {
		t.Fatalf("pools sorted = %v, want UAH then USD", pools)
	}
}
