package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OperationStatus string

const (
	OperationStatusPending  OperationStatus = "PENDING"
	OperationStatusApproved OperationStatus = "APPROVED"
	OperationStatusRejected OperationStatus = "REJECTED"
)

// DepositAction and CardAction are deliberately separate types: the two log
// streams have different action sets and an entry of one stream can never
// carry an action of the other.
type DepositAction string

const (
	DepositActionOpenRequested  DepositAction = "OPEN_REQUESTED"
	DepositActionCloseRequested DepositAction = "CLOSE_REQUESTED"
)

type CardAction string

const (
	CardActionOpenRequested   CardAction = "OPEN_REQUESTED"
	CardActionCloseRequested  CardAction = "CLOSE_REQUESTED"
	CardActionCreditRequested CardAction = "CREDIT_REQUESTED"
	CardActionDebitRequested  CardAction = "DEBIT_REQUESTED"
)

// DepositOperation is one entry of the deposit operation log. Amount is the
// requested principal for an open, the principal being withdrawn for a close.
type DepositOperation struct {
	ID        int64
	ClientID  int64
	Amount    decimal.Decimal
	Currency  string
	Action    DepositAction
	Status    OperationStatus
	CreatedAt time.Time
}

// CardOperation is one entry of the card operation log. CardID is nil until
// the card exists, i.e. for open requests.
type CardOperation struct {
	ID        int64
	ClientID  int64
	Amount    decimal.Decimal
	Currency  string
	Action    CardAction
	Status    OperationStatus
	CardID    *int64
	CreatedAt time.Time
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

type ResourceKind string

const (
	ResourceKindDeposit ResourceKind = "deposit"
	ResourceKindCard    ResourceKind = "card"
)
