package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is a term deposit. A client holds at most one at a time.
type Deposit struct {
	ID        int64
	OwnerID   int64
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// Card is a debit card. Balance never goes below zero.
type Card struct {
	ID        int64
	OwnerID   int64
	Currency  string
	Balance   decimal.Decimal
	Number    string
	CVC       int
	ExpMonth  int
	ExpYear   int
	CreatedAt time.Time
}

// CurrencyPool is the bank-held balance for one currency. Every approved
// operation that credits a client debits the pool by the same amount and vice
// versa; the balance never goes below zero.
type CurrencyPool struct {
	Currency string
	Balance  decimal.Decimal
}
