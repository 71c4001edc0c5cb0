package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/middleware"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

type IntakeService interface {
	OpenDeposit(ctx context.Context, clientID int64, req models.OpenDepositRequest) (commons.Response[models.OperationResponse], error)
	CloseDeposit(ctx context.Context, clientID int64) (commons.Response[models.OperationResponse], error)
	OpenCard(ctx context.Context, clientID int64, req models.OpenCardRequest) (commons.Response[models.OperationResponse], error)
	CloseCard(ctx context.Context, clientID int64, cardID int64) (commons.Response[models.OperationResponse], error)
	CreditCard(ctx context.Context, clientID int64, cardID int64, req models.CardAmountRequest) (commons.Response[models.OperationResponse], error)
	DebitCard(ctx context.Context, clientID int64, cardID int64, req models.CardAmountRequest) (commons.Response[models.OperationResponse], error)
}

type IntakeController struct {
	service IntakeService
}

func NewIntakeController(service IntakeService) *IntakeController {
	return &IntakeController{service: service}
}

func (c *IntakeController) RegisterRoutes(api *mux.Router, requireRole func(domain.Role) func(http.Handler) http.Handler) {
	client := requireRole(domain.RoleClient)

	api.Handle("/deposits", client(http.HandlerFunc(c.openDeposit))).Methods(http.MethodPost)
	api.Handle("/deposits/close", client(http.HandlerFunc(c.closeDeposit))).Methods(http.MethodPost)
	api.Handle("/cards", client(http.HandlerFunc(c.openCard))).Methods(http.MethodPost)
	api.Handle("/cards/{cardId}/close", client(http.HandlerFunc(c.closeCard))).Methods(http.MethodPost)
	api.Handle("/cards/{cardId}/replenish", client(http.HandlerFunc(c.replenishCard))).Methods(http.MethodPost)
	api.Handle("/cards/{cardId}/withdraw", client(http.HandlerFunc(c.withdrawCard))).Methods(http.MethodPost)
}

func (c *IntakeController) openDeposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.OperationResponse]("unauthenticated"))
		return
	}

	var req models.OpenDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.OpenDeposit(r.Context(), principal.ClientID, req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *IntakeController) closeDeposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.OperationResponse]("unauthenticated"))
		return
	}

	response, err := c.service.CloseDeposit(r.Context(), principal.ClientID)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *IntakeController) openCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.OperationResponse]("unauthenticated"))
		return
	}

	var req models.OpenCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.OpenCard(r.Context(), principal.ClientID, req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *IntakeController) closeCard(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.OperationResponse]("unauthenticated"))
		return
	}

	cardID, err := pathCardID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.CloseCard(r.Context(), principal.ClientID, cardID)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *IntakeController) replenishCard(w http.ResponseWriter, r *http.Request) {
	c.cardAmount(w, r, c.service.CreditCard)
}

func (c *IntakeController) withdrawCard(w http.ResponseWriter, r *http.Request) {
	c.cardAmount(w, r, c.service.DebitCard)
}

func (c *IntakeController) cardAmount(
	w http.ResponseWriter,
	r *http.Request,
	call func(ctx context.Context, clientID int64, cardID int64, req models.CardAmountRequest) (commons.Response[models.OperationResponse], error),
) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.OperationResponse]("unauthenticated"))
		return
	}

	cardID, err := pathCardID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()))
		return
	}

	var req models.CardAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()))
		return
	}

	response, err := call(r.Context(), principal.ClientID, cardID, req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func pathCardID(r *http.Request) (int64, error) {
	cardID, err := strconv.ParseInt(mux.Vars(r)["cardId"], 10, 64)
	if err != nil || cardID <= 0 {
		return 0, errors.New("cardId must be a positive integer")
	}
	return cardID, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps service failures onto HTTP statuses. Anything not in
// the domain taxonomy is an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrNoActiveDeposit):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflictingPendingRequest),
		errors.Is(err, domain.ErrAlreadyResolved),
		errors.Is(err, domain.ErrStoreConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientPoolFunds), errors.Is(err, domain.ErrInsufficientCardFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
