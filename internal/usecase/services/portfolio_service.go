package services

import (
	"context"
	"errors"
	"time"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/repo_interfaces"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/logger"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/service_interfaces"
)

// Verify that PortfolioService implements the service_interfaces.PortfolioService interface
var _ service_interfaces.PortfolioService = (*PortfolioService)(nil)

type PortfolioService struct {
	store repo_interfaces.LedgerStore
}

func NewPortfolioService(store repo_interfaces.LedgerStore) *PortfolioService {
	return &PortfolioService{store: store}
}

func (s *PortfolioService) Portfolio(ctx context.Context, clientID int64) (commons.Response[models.PortfolioResponse], error) {
	logger.Info("portfolio service portfolio request", logger.Fields{
		"clientId": clientID,
	})

	var response models.PortfolioResponse
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		client, err := tx.ClientByID(ctx, clientID)
		if err != nil {
			return err
		}
		response.DepositProfit = client.DepositProfit.StringFixed(2)

		deposit, err := tx.DepositByOwner(ctx, clientID)
		switch {
		case err == nil:
			response.Deposit = &models.DepositView{
				ID:        deposit.ID,
				Currency:  deposit.Currency,
				Balance:   deposit.Balance.StringFixed(2),
				CreatedAt: deposit.CreatedAt.UTC().Format(time.RFC3339),
			}
			response.HasActiveDeposit = true
		case errors.Is(err, domain.ErrRecordNotFound):
			// no deposit held
		default:
			return err
		}

		response.HasPendingDeposit, err = tx.HasPendingDepositOperation(ctx, clientID)
		if err != nil {
			return err
		}

		cards, err := tx.CardsByOwner(ctx, clientID)
		if err != nil {
			return err
		}

		response.Cards = make([]models.CardView, 0, len(cards))
		for _, card := range cards {
			pending, err := tx.HasPendingCardOperation(ctx, clientID, &card.ID)
			if err != nil {
				return err
			}
			response.Cards = append(response.Cards, models.CardView{
				ID:               card.ID,
				Currency:         card.Currency,
				Balance:          card.Balance.StringFixed(2),
				Number:           card.Number,
				CVC:              card.CVC,
				ExpMonth:         card.ExpMonth,
				ExpYear:          card.ExpYear,
				PendingOperation: pending,
			})
		}
		return nil
	})
	if err != nil {
		logger.Error("portfolio service portfolio failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[models.PortfolioResponse](userMessage(err)), err
	}

	return commons.SuccessResponse("portfolio fetched successfully", response), nil
}

func (s *PortfolioService) PendingOperations(ctx context.Context) (commons.Response[models.PendingOperationsResponse], error) {
	logger.Info("portfolio service pending operations request", nil)

	var response models.PendingOperationsResponse
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		depositOps, err := tx.PendingDepositOperations(ctx)
		if err != nil {
			return err
		}
		cardOps, err := tx.PendingCardOperations(ctx)
		if err != nil {
			return err
		}

		response.DepositOperations = make([]models.OperationResponse, 0, len(depositOps))
		for _, op := range depositOps {
			response.DepositOperations = append(response.DepositOperations, mapDepositOperation(op))
		}
		response.CardOperations = make([]models.OperationResponse, 0, len(cardOps))
		for _, op := range cardOps {
			response.CardOperations = append(response.CardOperations, mapCardOperation(op))
		}
		return nil
	})
	if err != nil {
		logger.Error("portfolio service pending operations failed", err, nil)
		return commons.ErrorResponse[models.PendingOperationsResponse](userMessage(err)), err
	}

	return commons.SuccessResponse("pending operations fetched successfully", response), nil
}

func (s *PortfolioService) Pools(ctx context.Context) (commons.Response[[]models.PoolResponse], error) {
	logger.Info("portfolio service pools request", nil)

	var response []models.PoolResponse
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		pools, err := tx.Pools(ctx)
		if err != nil {
			return err
		}
		response = make([]models.PoolResponse, 0, len(pools))
		for _, pool := range pools {
			response = append(response, models.PoolResponse{
				Currency: pool.Currency,
				Balance:  pool.Balance.StringFixed(2),
			})
		}
		return nil
	})
	if err != nil {
		logger.Error("portfolio service pools failed", err, nil)
		return commons.ErrorResponse[[]models.PoolResponse](userMessage(err)), err
	}

	return commons.SuccessResponse("bank pools fetched successfully", response), nil
}
