package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/memory"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/repo_interfaces"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/services"
)

func newSeededStore() *memory.Store {
	store := memory.NewStore()
	store.SeedPool("UAH", decimal.NewFromInt(100000))
	store.SeedClient(domain.Client{ID: 7, FirstName: "Olena", LastName: "Kovalenko", Email: "olena@example.com"})
	return store
}

func poolBalance(t *testing.T, store *memory.Store, currency string) decimal.Decimal {
	t.Helper()
	var balance decimal.Decimal
	err := store.Within(context.Background(), func(tx repo_interfaces.LedgerTx) error {
		var err error
		balance, err = tx.PoolBalance(context.Background(), currency)
		return err
	})
	if err != nil {
		t.Fatalf("pool balance: %v", err)
	}
	return balance
}

func TestOpenDepositRecordsPendingOperation(t *testing.T) {
	store := newSeededStore()
	svc := services.NewIntakeService(store)

	resp, err := svc.OpenDeposit(context.Background(), 7, models.OpenDepositRequest{
		Currency: "uah",
		Amount:   decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("open deposit: %v", err)
	}

	if resp.Data.Status != string(domain.OperationStatusPending) {
		t.Fatalf("status = %s, want PENDING", resp.Data.Status)
	}
	if resp.Data.Currency != "UAH" {
		t.Fatalf("currency = %s, want UAH", resp.Data.Currency)
	}
	if resp.Data.OperationID != 1 {
		t.Fatalf("operationId = %d, want 1", resp.Data.OperationID)
	}

	// Intake never moves money.
	if got := poolBalance(t, store, "UAH"); !got.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("pool = %s, want 100000 untouched", got)
	}
}

func TestOpenDepositRejectsAmountAbovePool(t *testing.T) {
	store := newSeededStore()
	svc := services.NewIntakeService(store)

	_, err := svc.OpenDeposit(context.Background(), 7, models.OpenDepositRequest{
		Currency: "UAH",
		Amount:   decimal.NewFromInt(100001),
	})
	if !errors.Is(err, domain.ErrInsufficientPoolFunds) {
		t.Fatalf("err = %v, want ErrInsufficientPoolFunds", err)
	}
}

func TestOpenDepositRejectsWhileAnotherRequestPending(t *testing.T) {
	store := newSeededStore()
	svc := services.NewIntakeService(store)
	req := models.OpenDepositRequest{Currency: "UAH", Amount: decimal.NewFromInt(500)}

	if _, err := svc.OpenDeposit(context.Background(), 7, req); err != nil {
		t.Fatalf("first open deposit: %v", err)
	}

	_, err := svc.OpenDeposit(context.Background(), 7, req)
	if !errors.Is(err, domain.ErrConflictingPendingRequest) {
		t.Fatalf("err = %v, want ErrConflictingPendingRequest", err)
	}
}

func TestOpenDepositRejectsWhileDepositActive(t *testing.T) {
	store := newSeededStore()
	store.SeedDeposit(domain.Deposit{
		OwnerID:   7,
		Currency:  "UAH",
		Balance:   decimal.NewFromInt(2000),
		CreatedAt: time.Now().UTC(),
	})
	svc := services.NewIntakeService(store)

	_, err := svc.OpenDeposit(context.Background(), 7, models.OpenDepositRequest{
		Currency: "UAH",
		Amount:   decimal.NewFromInt(500),
	})
	if !errors.Is(err, domain.ErrConflictingPendingRequest) {
		t.Fatalf("err = %v, want ErrConflictingPendingRequest", err)
	}
}

func TestOpenDepositValidation(t *testing.T) {
	svc := services.NewIntakeService(newSeededStore())

	_, err := svc.OpenDeposit(context.Background(), 7, models.OpenDepositRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty open deposit request")
	}
}

func TestCloseDepositWithoutDeposit(t *testing.T) {
	svc := services.NewIntakeService(newSeededStore())

	_, err := svc.CloseDeposit(context.Background(), 7)
	if !errors.Is(err, domain.ErrNoActiveDeposit) {
		t.Fatalf("err = %v, want ErrNoActiveDeposit", err)
	}
}

func TestCloseDepositCarriesCurrentPrincipal(t *testing.T) {
	store := newSeededStore()
	store.SeedDeposit(domain.Deposit{
		OwnerID:   7,
		Currency:  "UAH",
		Balance:   decimal.NewFromInt(2500),
		CreatedAt: time.Now().UTC().AddDate(0, 0, -40),
	})
	svc := services.NewIntakeService(store)

	resp, err := svc.CloseDeposit(context.Background(), 7)
	if err != nil {
		t.Fatalf("close deposit: %v", err)
	}
	if resp.Data.Amount != "2500.00" {
		t.Fatalf("amount = %s, want 2500.00", resp.Data.Amount)
	}
	if resp.Data.Action != string(domain.DepositActionCloseRequested) {
		t.Fatalf("action = %s, want CLOSE_REQUESTED", resp.Data.Action)
	}
}

func TestOpenCardUnknownCurrency(t *testing.T) {
	svc := services.NewIntakeService(newSeededStore())

	_, err := svc.OpenCard(context.Background(), 7, models.OpenCardRequest{Currency: "JPY"})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestWithdrawCardScreensBalanceAtIntake(t *testing.T) {
	store := newSeededStore()
	store.SeedCard(domain.Card{
		ID:       11,
		OwnerID:  7,
		Currency: "UAH",
		Balance:  decimal.NewFromInt(100),
	})
	svc := services.NewIntakeService(store)

	_, err := svc.DebitCard(context.Background(), 7, 11, models.CardAmountRequest{
		Amount: decimal.NewFromInt(150),
	})
	if !errors.Is(err, domain.ErrInsufficientCardFunds) {
		t.Fatalf("err = %v, want ErrInsufficientCardFunds", err)
	}
}

func TestCardRequestsHideForeignCards(t *testing.T) {
	store := newSeededStore()
	store.SeedCard(domain.Card{
		ID:       11,
		OwnerID:  99,
		Currency: "UAH",
		Balance:  decimal.NewFromInt(100),
	})
	svc := services.NewIntakeService(store)

	_, err := svc.CloseCard(context.Background(), 7, 11)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestCardRequestsConflictPerCard(t *testing.T) {
	store := newSeededStore()
	store.SeedCard(domain.Card{
		ID:       11,
		OwnerID:  7,
		Currency: "UAH",
		Balance:  decimal.NewFromInt(100),
	})
	svc := services.NewIntakeService(store)

	if _, err := svc.CreditCard(context.Background(), 7, 11, models.CardAmountRequest{
		Amount: decimal.NewFromInt(50),
	}); err != nil {
		t.Fatalf("first credit request: %v", err)
	}

	_, err := svc.CloseCard(context.Background(), 7, 11)
	if !errors.Is(err, domain.ErrConflictingPendingRequest) {
		t.Fatalf("err = %v, want ErrConflictingPendingRequest", err)
	}
}
