package service_interfaces

import (
	"context"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
)

// IntakeService records client requests as pending operation-log entries.
// Nothing moves money here; balances change only when a manager approves.
type IntakeService interface {
	OpenDeposit(ctx context.Context, clientID int64, req models.OpenDepositRequest) (commons.Response[models.OperationResponse], error)
	CloseDeposit(ctx context.Context, clientID int64) (commons.Response[models.OperationResponse], error)
	OpenCard(ctx context.Context, clientID int64, req models.OpenCardRequest) (commons.Response[models.OperationResponse], error)
	CloseCard(ctx context.Context, clientID int64, cardID int64) (commons.Response[models.OperationResponse], error)
	CreditCard(ctx context.Context, clientID int64, cardID int64, req models.CardAmountRequest) (commons.Response[models.OperationResponse], error)
	DebitCard(ctx context.Context, clientID int64, cardID int64, req models.CardAmountRequest) (commons.Response[models.OperationResponse], error)
}
