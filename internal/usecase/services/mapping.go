package services

import (
	"time"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

func mapDepositOperation(op domain.DepositOperation) models.OperationResponse {
	return models.OperationResponse{
		OperationID: op.ID,
		Kind:        string(domain.ResourceKindDeposit),
		ClientID:    op.ClientID,
		Action:      string(op.Action),
		Status:      string(op.Status),
		Amount:      op.Amount.StringFixed(2),
		Currency:    op.Currency,
		CreatedAt:   op.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapCardOperation(op domain.CardOperation) models.OperationResponse {
	return models.OperationResponse{
		OperationID: op.ID,
		Kind:        string(domain.ResourceKindCard),
		ClientID:    op.ClientID,
		Action:      string(op.Action),
		Status:      string(op.Status),
		Amount:      op.Amount.StringFixed(2),
		Currency:    op.Currency,
		CardID:      op.CardID,
		CreatedAt:   op.CreatedAt.UTC().Format(time.RFC3339),
	}
}
