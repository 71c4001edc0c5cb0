package service_interfaces

import (
	"context"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
)

// RateService serves display-only exchange rates. Settlement never uses them.
type RateService interface {
	GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error)
}
