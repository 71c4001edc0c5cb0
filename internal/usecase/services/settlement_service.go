package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/repo_interfaces"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/logger"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/usecase/service_interfaces"
)

var settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "backoffice_settlements_total",
	Help: "Resolved operations by resource kind, action and resulting status",
}, []string{"kind", "action", "status"})

// Verify that SettlementService implements the service_interfaces.SettlementService interface
var _ service_interfaces.SettlementService = (*SettlementService)(nil)

type SettlementService struct {
	store repo_interfaces.LedgerStore
	now   func() time.Time
}

func NewSettlementService(store repo_interfaces.LedgerStore) *SettlementService {
	return &SettlementService{store: store, now: time.Now}
}

// Resolve flips a pending entry to approved or rejected exactly once. On
// approval every balance mutation of the branch and the status flip commit
// together; any failure rolls the whole resolve back.
func (s *SettlementService) Resolve(ctx context.Context, kind domain.ResourceKind, operationID int64, req models.ResolveRequest) (commons.Response[models.OperationResponse], error) {
	logger.Info("settlement service resolve request", logger.Fields{
		"kind":        kind,
		"operationId": operationID,
		"payload":     logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()), err
	}

	approve := strings.EqualFold(strings.TrimSpace(req.Decision), string(domain.DecisionApprove))

	var (
		response models.OperationResponse
		action   string
	)
	err := s.store.Within(ctx, func(tx repo_interfaces.LedgerTx) error {
		switch kind {
		case domain.ResourceKindDeposit:
			op, err := s.resolveDeposit(ctx, tx, operationID, approve)
			if err != nil {
				return err
			}
			response = mapDepositOperation(op)
			action = string(op.Action)
			return nil
		case domain.ResourceKindCard:
			op, err := s.resolveCard(ctx, tx, operationID, approve)
			if err != nil {
				return err
			}
			response = mapCardOperation(op)
			action = string(op.Action)
			return nil
		default:
			return fmt.Errorf("%w: unknown resource kind %q", domain.ErrRecordNotFound, kind)
		}
	})
	if err != nil {
		logger.Error("settlement service resolve failed", err, logger.Fields{
			"kind":        kind,
			"operationId": operationID,
		})
		return commons.ErrorResponse[models.OperationResponse](userMessage(err)), err
	}

	settlementsTotal.WithLabelValues(string(kind), action, response.Status).Inc()
	logger.Info("settlement service resolved", logger.Fields{
		"kind":        kind,
		"operationId": operationID,
		"status":      response.Status,
	})

	return commons.SuccessResponse("operation resolved", response), nil
}

func (s *SettlementService) resolveDeposit(ctx context.Context, tx repo_interfaces.LedgerTx, operationID int64, approve bool) (domain.DepositOperation, error) {
	op, err := tx.DepositOperationByID(ctx, operationID)
	if err != nil {
		return domain.DepositOperation{}, err
	}
	if op.Status != domain.OperationStatusPending {
		return domain.DepositOperation{}, domain.ErrAlreadyResolved
	}

	if !approve {
		op.Status = domain.OperationStatusRejected
		return op, tx.SetDepositOperationStatus(ctx, op.ID, op.Status)
	}

	switch op.Action {
	case domain.DepositActionOpenRequested:
		// The pool funds the deposit: debit it and create the holding.
		if err := tx.AdjustPool(ctx, op.Currency, op.Amount.Neg()); err != nil {
			return domain.DepositOperation{}, err
		}
		if _, err := tx.CreateDeposit(ctx, domain.Deposit{
			OwnerID:   op.ClientID,
			Currency:  op.Currency,
			Balance:   op.Amount,
			CreatedAt: s.now().UTC(),
		}); err != nil {
			return domain.DepositOperation{}, err
		}

	case domain.DepositActionCloseRequested:
		deposit, err := tx.DepositByOwner(ctx, op.ClientID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.DepositOperation{}, domain.ErrNoActiveDeposit
			}
			return domain.DepositOperation{}, err
		}

		// Interest is measured from the deposit's creation to the moment the
		// close was requested, not to the moment of approval.
		payout := DepositPayout(deposit.Balance, deposit.CreatedAt, op.CreatedAt)

		if err := tx.DeleteDeposit(ctx, deposit.ID); err != nil {
			return domain.DepositOperation{}, err
		}
		if err := tx.AddDepositProfit(ctx, op.ClientID, payout); err != nil {
			return domain.DepositOperation{}, err
		}
		if err := tx.AdjustPool(ctx, deposit.Currency, payout.Neg()); err != nil {
			return domain.DepositOperation{}, err
		}

	default:
		return domain.DepositOperation{}, fmt.Errorf("%w: unknown deposit action %q", domain.ErrRecordNotFound, op.Action)
	}

	op.Status = domain.OperationStatusApproved
	return op, tx.SetDepositOperationStatus(ctx, op.ID, op.Status)
}

func (s *SettlementService) resolveCard(ctx context.Context, tx repo_interfaces.LedgerTx, operationID int64, approve bool) (domain.CardOperation, error) {
	op, err := tx.CardOperationByID(ctx, operationID)
	if err != nil {
		return domain.CardOperation{}, err
	}
	if op.Status != domain.OperationStatusPending {
		return domain.CardOperation{}, domain.ErrAlreadyResolved
	}

	if !approve {
		op.Status = domain.OperationStatusRejected
		return op, tx.SetCardOperationStatus(ctx, op.ID, op.Status)
	}

	switch op.Action {
	case domain.CardActionOpenRequested:
		issued := s.now().UTC()
		if _, err := tx.CreateCard(ctx, domain.Card{
			OwnerID:   op.ClientID,
			Currency:  op.Currency,
			Balance:   decimal.Zero,
			Number:    generateCardNumber(),
			CVC:       generateCVC(),
			ExpMonth:  int(issued.Month()),
			ExpYear:   issued.Year() + 2,
			CreatedAt: issued,
		}); err != nil {
			return domain.CardOperation{}, err
		}

	case domain.CardActionCloseRequested:
		if op.CardID == nil {
			return domain.CardOperation{}, domain.ErrRecordNotFound
		}
		if err := tx.DeleteCard(ctx, *op.CardID); err != nil {
			return domain.CardOperation{}, err
		}

	case domain.CardActionCreditRequested:
		// A replenishment brings cash into the bank: card and pool both grow.
		if op.CardID == nil {
			return domain.CardOperation{}, domain.ErrRecordNotFound
		}
		if err := tx.AdjustCardBalance(ctx, *op.CardID, op.Amount); err != nil {
			return domain.CardOperation{}, err
		}
		if err := tx.AdjustPool(ctx, op.Currency, op.Amount); err != nil {
			return domain.CardOperation{}, err
		}

	case domain.CardActionDebitRequested:
		// Re-checked here: the balance may have moved since intake. The store
		// refuses any adjustment that would take card or pool negative.
		if op.CardID == nil {
			return domain.CardOperation{}, domain.ErrRecordNotFound
		}
		if err := tx.AdjustCardBalance(ctx, *op.CardID, op.Amount.Neg()); err != nil {
			return domain.CardOperation{}, err
		}
		if err := tx.AdjustPool(ctx, op.Currency, op.Amount.Neg()); err != nil {
			return domain.CardOperation{}, err
		}

	default:
		return domain.CardOperation{}, fmt.Errorf("%w: unknown card action %q", domain.ErrRecordNotFound, op.Action)
	}

	op.Status = domain.OperationStatusApproved
	return op, tx.SetCardOperationStatus(ctx, op.ID, op.Status)
}

func generateCardNumber() string {
	digits := make([]byte, 16)
	for i := range digits {
		digits[i] = byte('0' + rand.IntN(10))
	}
	return string(digits)
}

func generateCVC() int {
	return 100 + rand.IntN(900)
}
