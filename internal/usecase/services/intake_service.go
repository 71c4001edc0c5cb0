package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/repo_interfaces"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/logger"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/service_interfaces"
)

// Verify that IntakeService implements the service_interfaces.IntakeService interface
var _ service_interfaces.IntakeService = (*IntakeService)(nil)

type IntakeService struct {
	store repo_interfaces.LedgerStore
	now   func() time.Time
}

func NewIntakeService(store repo_interfaces.LedgerStore) *IntakeService {
	return &IntakeService{store: store, now: time.Now}
}

func (s *IntakeService) OpenDeposit(ctx context.Context, clientID int64, req models.OpenDepositRequest) (commons.Response[models.OperationResponse], error) {
	logger.Info("intake service open deposit request", logger.Fields{
		"clientId": clientID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()), err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	var created domain.DepositOperation
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		pool, err := tx.PoolBalance(ctx, currency)
		if err != nil {
			return err
		}
		if pool.LessThan(req.Amount) {
			return domain.ErrInsufficientPoolFunds
		}

		pending, err := tx.HasPendingDepositOperation(ctx, clientID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrConflictingPendingRequest
		}

		// A client holds at most one deposit; an active one blocks a new open
		// request just like a pending one.
		if _, err := tx.DepositByOwner(ctx, clientID); err == nil {
			return domain.ErrConflictingPendingRequest
		} else if !errors.Is(err, domain.ErrRecordNotFound) {
			return err
		}

		id, err := tx.NextDepositOperationID(ctx)
		if err != nil {
			return err
		}

		created, err = tx.AppendDepositOperation(ctx, domain.DepositOperation{
			ID:        id,
			ClientID:  clientID,
			Amount:    req.Amount,
			Currency:  currency,
			Action:    domain.DepositActionOpenRequested,
			Status:    domain.OperationStatusPending,
			CreatedAt: s.now().UTC(),
		})
		return err
	})
	if err != nil {
		logger.Error("intake service open deposit failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[models.OperationResponse](userMessage(err)), err
	}

	logger.Info("intake service open deposit recorded", logger.Fields{
		"clientId":    clientID,
		"operationId": created.ID,
	})

	return commons.SuccessResponse("deposit open request recorded", mapDepositOperation(created)), nil
}

func (s *IntakeService) CloseDeposit(ctx context.Context, clientID int64) (commons.Response[models.OperationResponse], error) {
	logger.Info("intake service close deposit request", logger.Fields{
		"clientId": clientID,
	})

	var created domain.DepositOperation
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		deposit, err := tx.DepositByOwner(ctx, clientID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrNoActiveDeposit
			}
			return err
		}

		pending, err := tx.HasPendingDepositOperation(ctx, clientID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrConflictingPendingRequest
		}

		id, err := tx.NextDepositOperationID(ctx)
		if err != nil {
			return err
		}

		created, err = tx.AppendDepositOperation(ctx, domain.DepositOperation{
			ID:        id,
			ClientID:  clientID,
			Amount:    deposit.Balance,
			Currency:  deposit.Currency,
			Action:    domain.DepositActionCloseRequested,
			Status:    domain.OperationStatusPending,
			CreatedAt: s.now().UTC(),
		})
		return err
	})
	if err != nil {
		logger.Error("intake service close deposit failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[models.OperationResponse](userMessage(err)), err
	}

	return commons.SuccessResponse("deposit close request recorded", mapDepositOperation(created)), nil
}

func (s *IntakeService) OpenCard(ctx context.Context, clientID int64, req models.OpenCardRequest) (commons.Response[models.OperationResponse], error) {
	logger.Info("intake service open card request", logger.Fields{
		"clientId": clientID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()), err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	var created domain.CardOperation
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		// Validates the currency: every supported currency has a pool row.
		if _, err := tx.PoolBalance(ctx, currency); err != nil {
			return err
		}

		pending, err := tx.HasPendingCardOperation(ctx, clientID, nil)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrConflictingPendingRequest
		}

		id, err := tx.NextCardOperationID(ctx)
		if err != nil {
			return err
		}

		created, err = tx.AppendCardOperation(ctx, domain.CardOperation{
			ID:        id,
			ClientID:  clientID,
			Amount:    decimal.Zero,
			Currency:  currency,
			Action:    domain.CardActionOpenRequested,
			Status:    domain.OperationStatusPending,
			CreatedAt: s.now().UTC(),
		})
		return err
	})
	if err != nil {
		logger.Error("intake service open card failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[models.OperationResponse](userMessage(err)), err
	}

	return commons.SuccessResponse("card open request recorded", mapCardOperation(created)), nil
}

func (s *IntakeService) CloseCard(ctx context.Context, clientID int64, cardID int64) (commons.Response[models.OperationResponse], error) {
	logger.Info("intake service close card request", logger.Fields{
		"clientId": clientID,
		"cardId":   cardID,
	})

	var created domain.CardOperation
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		card, err := s.ownedCard(ctx, tx, clientID, cardID)
		if err != nil {
			return err
		}

		if err := s.ensureNoPendingCardOperation(ctx, tx, clientID, cardID); err != nil {
			return err
		}

		id, err := tx.NextCardOperationID(ctx)
		if err != nil {
			return err
		}

		created, err = tx.AppendCardOperation(ctx, domain.CardOperation{
			ID:        id,
			ClientID:  clientID,
			Amount:    decimal.Zero,
			Currency:  card.Currency,
			Action:    domain.CardActionCloseRequested,
			Status:    domain.OperationStatusPending,
			CardID:    &card.ID,
			CreatedAt: s.now().UTC(),
		})
		return err
	})
	if err != nil {
		logger.Error("intake service close card failed", err, logger.Fields{
			"clientId": clientID,
			"cardId":   cardID,
		})
		return commons.ErrorResponse[models.OperationResponse](userMessage(err)), err
	}

	return commons.SuccessResponse("card close request recorded", mapCardOperation(created)), nil
}

func (s *IntakeService) CreditCard(ctx context.Context, clientID int64, cardID int64, req models.CardAmountRequest) (commons.Response[models.OperationResponse], error) {
	return s.appendCardAmountOperation(ctx, clientID, cardID, req, domain.CardActionCreditRequested, "card replenish request recorded")
}

func (s *IntakeService) DebitCard(ctx context.Context, clientID int64, cardID int64, req models.CardAmountRequest) (commons.Response[models.OperationResponse], error) {
	return s.appendCardAmountOperation(ctx, clientID, cardID, req, domain.CardActionDebitRequested, "card withdraw request recorded")
}

func (s *IntakeService) appendCardAmountOperation(
	ctx context.Context,
	clientID int64,
	cardID int64,
	req models.CardAmountRequest,
	action domain.CardAction,
	successMessage string,
) (commons.Response[models.OperationResponse], error) {
	logger.Info("intake service card amount request", logger.Fields{
		"clientId": clientID,
		"cardId":   cardID,
		"action":   action,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()), err
	}

	var created domain.CardOperation
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		card, err := s.ownedCard(ctx, tx, clientID, cardID)
		if err != nil {
			return err
		}

		// Withdrawals are screened against the current balance here and
		// re-checked at settlement: the balance may move between the two.
		if action == domain.CardActionDebitRequested && req.Amount.GreaterThan(card.Balance) {
			return domain.ErrInsufficientCardFunds
		}

		if err := s.ensureNoPendingCardOperation(ctx, tx, clientID, cardID); err != nil {
			return err
		}

		id, err := tx.NextCardOperationID(ctx)
		if err != nil {
			return err
		}

		created, err = tx.AppendCardOperation(ctx, domain.CardOperation{
			ID:        id,
			ClientID:  clientID,
			Amount:    req.Amount,
			Currency:  card.Currency,
			Action:    action,
			Status:    domain.OperationStatusPending,
			CardID:    &card.ID,
			CreatedAt: s.now().UTC(),
		})
		return err
	})
	if err != nil {
		logger.Error("intake service card amount request failed", err, logger.Fields{
			"clientId": clientID,
			"cardId":   cardID,
			"action":   action,
		})
		return commons.ErrorResponse[models.OperationResponse](userMessage(err)), err
	}

	return commons.SuccessResponse(successMessage, mapCardOperation(created)), nil
}

// ownedCard loads the card and hides other clients' cards behind not-found.
func (s *IntakeService) ownedCard(ctx context.Context, tx repo_interfaces.LedgerTx, clientID, cardID int64) (domain.Card, error) {
	card, err := tx.CardByID(ctx, cardID)
	if err != nil {
		return domain.Card{}, err
	}
	if card.OwnerID != clientID {
		return domain.Card{}, domain.ErrRecordNotFound
	}
	return card, nil
}

func (s *IntakeService) ensureNoPendingCardOperation(ctx context.Context, tx repo_interfaces.LedgerTx, clientID, cardID int64) error {
	pending, err := tx.HasPendingCardOperation(ctx, clientID, &cardID)
	if err != nil {
		return err
	}
	if pending {
		return domain.ErrConflictingPendingRequest
	}
	return nil
}
