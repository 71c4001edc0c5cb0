package services

import (
	"context"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/logger"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/rates"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/service_interfaces"
)

// Verify that RateService implements the service_interfaces.RateService interface
var _ service_interfaces.RateService = (*RateService)(nil)

type RateService struct {
	provider rates.Provider
}

func NewRateService(provider rates.Provider) *RateService {
	return &RateService{provider: provider}
}

func (s *RateService) GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error) {
	logger.Info("rate service get rates request", nil)

	quotes, err := s.provider.GetRates(ctx)
	if err != nil {
		logger.Error("rate service get rates failed", err, nil)
		return commons.ErrorResponse[[]models.RateResponse]("failed to get rates", "Unable to fetch rates right now"), err
	}

	resp := make([]models.RateResponse, 0, len(quotes))
	for _, quote := range quotes {
		resp = append(resp, models.RateResponse{
			Currency:     quote.Currency,
			BaseCurrency: quote.BaseCurrency,
			Buy:          quote.Buy,
			Sale:         quote.Sale,
		})
	}

	logger.Info("rate service get rates success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("rates fetched successfully", resp), nil
}
