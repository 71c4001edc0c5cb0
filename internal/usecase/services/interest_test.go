package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/services"
)

func TestDepositPayoutSingleMonth(t *testing.T) {
	opened := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	closed := opened.AddDate(0, 0, 30)

	got := services.DepositPayout(decimal.NewFromInt(1000), opened, closed)
	if want := "1050.00"; got.StringFixed(2) != want {
		t.Fatalf("payout = %s, want %s", got.StringFixed(2), want)
	}
}

func TestDepositPayoutCompoundsPerFullMonth(t *testing.T) {
	opened := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	closed := opened.AddDate(0, 0, 95)

	// 95 days is three full 30-day months: 1000 * 1.05^3 = 1157.625,
	// truncated to 1157.62.
	got := services.DepositPayout(decimal.NewFromInt(1000), opened, closed)
	if want := "1157.62"; got.StringFixed(2) != want {
		t.Fatalf("payout = %s, want %s", got.StringFixed(2), want)
	}
}

func TestDepositPayoutMinimumOneMonth(t *testing.T) {
	opened := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	closed := opened.AddDate(0, 0, 3)

	got := services.DepositPayout(decimal.NewFromInt(1000), opened, closed)
	if want := "1050.00"; got.StringFixed(2) != want {
		t.Fatalf("payout = %s, want %s", got.StringFixed(2), want)
	}
}

func TestDepositPayoutTruncatesToCent(t *testing.T) {
	opened := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	closed := opened.AddDate(0, 0, 60)

	// 1234.56 * 1.1025 = 1361.1024, the fraction of a cent is never paid.
	got := services.DepositPayout(decimal.RequireFromString("1234.56"), opened, closed)
	if want := "1361.10"; got.StringFixed(2) != want {
		t.Fatalf("payout = %s, want %s", got.StringFixed(2), want)
	}
}
