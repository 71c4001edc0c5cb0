package service_interfaces

import (
	"context"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
)

type PortfolioService interface {
	// Portfolio is the client's own view: holdings plus the flags the intake
	// rules are built on (active deposit, pending deposit, per-card pending).
	Portfolio(ctx context.Context, clientID int64) (commons.Response[models.PortfolioResponse], error)
	// PendingOperations is the manager review queue.
	PendingOperations(ctx context.Context) (commons.Response[models.PendingOperationsResponse], error)
	// Pools is the administrator view of bank-held balances per currency.
	Pools(ctx context.Context) (commons.Response[[]models.PoolResponse], error)
}
