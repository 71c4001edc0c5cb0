package repo_interfaces

import (
	"context"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerStore is the transactional boundary around every balance-affecting
// operation. Within runs fn against a LedgerTx inside one serializable
// transaction: either everything fn did commits, or nothing does. Serialization
// failures are retried a bounded number of times before surfacing as
// domain.ErrStoreConflict; connection faults surface as
// domain.ErrStoreUnavailable.
type LedgerStore interface {
	Within(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the operation surface available inside one transaction. Reads
// that precede writes of the same row take row locks, so concurrent
// transactions touching the same pool, card or log entry serialize.
type LedgerTx interface {
	// Currency pools.
	PoolBalance(ctx context.Context, currency string) (decimal.Decimal, error)
	// AdjustPool adds delta to the pool balance and fails with
	// domain.ErrInsufficientPoolFunds if the result would be negative.
	AdjustPool(ctx context.Context, currency string, delta decimal.Decimal) error
	Pools(ctx context.Context) ([]domain.CurrencyPool, error)

	// Clients.
	ClientByID(ctx context.Context, clientID int64) (domain.Client, error)
	AddDepositProfit(ctx context.Context, clientID int64, amount decimal.Decimal) error

	// Deposits.
	DepositByOwner(ctx context.Context, clientID int64) (domain.Deposit, error)
	CreateDeposit(ctx context.Context, deposit domain.Deposit) (domain.Deposit, error)
	DeleteDeposit(ctx context.Context, depositID int64) error

	// Cards.
	CardByID(ctx context.Context, cardID int64) (domain.Card, error)
	CardsByOwner(ctx context.Context, clientID int64) ([]domain.Card, error)
	CreateCard(ctx context.Context, card domain.Card) (domain.Card, error)
	DeleteCard(ctx context.Context, cardID int64) error
	// AdjustCardBalance adds delta to the card balance and fails with
	// domain.ErrInsufficientCardFunds if the result would be negative.
	AdjustCardBalance(ctx context.Context, cardID int64, delta decimal.Decimal) error

	// Deposit operation log.
	NextDepositOperationID(ctx context.Context) (int64, error)
	AppendDepositOperation(ctx context.Context, op domain.DepositOperation) (domain.DepositOperation, error)
	DepositOperationByID(ctx context.Context, operationID int64) (domain.DepositOperation, error)
	SetDepositOperationStatus(ctx context.Context, operationID int64, status domain.OperationStatus) error
	HasPendingDepositOperation(ctx context.Context, clientID int64) (bool, error)
	PendingDepositOperations(ctx context.Context) ([]domain.DepositOperation, error)

	// Card operation log. The pending check matches on (client, card): a nil
	// cardID matches open requests, which have no card yet.
	NextCardOperationID(ctx context.Context) (int64, error)
	AppendCardOperation(ctx context.Context, op domain.CardOperation) (domain.CardOperation, error)
	CardOperationByID(ctx context.Context, operationID int64) (domain.CardOperation, error)
	SetCardOperationStatus(ctx context.Context, operationID int64, status domain.OperationStatus) error
	HasPendingCardOperation(ctx context.Context, clientID int64, cardID *int64) (bool, error)
	PendingCardOperations(ctx context.Context) ([]domain.CardOperation, error)
}
