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

type SettlementService interface {
	Resolve(ctx context.Context, kind domain.ResourceKind, operationID int64, req models.ResolveRequest) (commons.Response[models.OperationResponse], error)
}

type SettlementController struct {
	service SettlementService
}

func NewSettlementController(service SettlementService) *SettlementController {
	return &SettlementController{service: service}
}

func (c *SettlementController) RegisterRoutes(api *mux.Router, requireRole func(domain.Role) func(http.Handler) http.Handler) {
	manager := requireRole(domain.RoleManager)

	api.Handle("/operations/{kind}/{operationId}/resolve", manager(http.HandlerFunc(c.resolve))).Methods(http.MethodPost)
}

func (c *SettlementController) resolve(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.PrincipalFrom(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.OperationResponse]("unauthenticated"))
		return
	}

	vars := mux.Vars(r)

	kind, err := parseResourceKind(vars["kind"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()))
		return
	}

	operationID, err := strconv.ParseInt(vars["operationId"], 10, 64)
	if err != nil || operationID <= 0 {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", "operationId must be a positive integer"))
		return
	}

	var req models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.OperationResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.Resolve(r.Context(), kind, operationID, req)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func parseResourceKind(raw string) (domain.ResourceKind, error) {
	switch domain.ResourceKind(raw) {
	case domain.ResourceKindDeposit:
		return domain.ResourceKindDeposit, nil
	case domain.ResourceKindCard:
		return domain.ResourceKindCard, nil
	default:
		return "", errors.New("kind must be deposit or card")
	}
}
