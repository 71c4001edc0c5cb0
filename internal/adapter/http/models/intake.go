package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type OpenDepositRequest struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r OpenDepositRequest) Validate() error {
	var errs []string

	if len(strings.TrimSpace(r.Currency)) != 3 {
		errs = append(errs, "currency must be 3 characters")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type OpenCardRequest struct {
	Currency string `json:"currency"`
}

func (r OpenCardRequest) Validate() error {
	if len(strings.TrimSpace(r.Currency)) != 3 {
		return errors.New("currency must be 3 characters")
	}
	return nil
}

// CardAmountRequest is the body for card replenish and withdraw requests.
type CardAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r CardAmountRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

// OperationResponse describes one operation-log entry, pending or resolved.
type OperationResponse struct {
	OperationID int64  `json:"operationId"`
	Kind        string `json:"kind"`
	ClientID    int64  `json:"clientId"`
	Action      string `json:"action"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	CardID      *int64 `json:"cardId,omitempty"`
	CreatedAt   string `json:"createdAt"`
}
