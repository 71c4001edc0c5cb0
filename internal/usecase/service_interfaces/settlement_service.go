package service_interfaces

import (
	"context"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

// SettlementService resolves a pending operation-log entry exactly once:
// reject leaves balances alone, approve applies the entry's balance effects
// and the resource lifecycle transition atomically.
type SettlementService interface {
	Resolve(ctx context.Context, kind domain.ResourceKind, operationID int64, req models.ResolveRequest) (commons.Response[models.OperationResponse], error)
}
