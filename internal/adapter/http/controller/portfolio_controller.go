package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/middleware"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

type PortfolioService interface {
	Portfolio(ctx context.Context, clientID int64) (commons.Response[models.PortfolioResponse], error)
	PendingOperations(ctx context.Context) (commons.Response[models.PendingOperationsResponse], error)
	Pools(ctx context.Context) (commons.Response[[]models.PoolResponse], error)
}

type PortfolioController struct {
	service PortfolioService
}

func NewPortfolioController(service PortfolioService) *PortfolioController {
	return &PortfolioController{service: service}
}

func (c *PortfolioController) RegisterRoutes(api *mux.Router, requireRole func(domain.Role) func(http.Handler) http.Handler) {
	api.Handle("/portfolio", requireRole(domain.RoleClient)(http.HandlerFunc(c.portfolio))).Methods(http.MethodGet)
	api.Handle("/operations/pending", requireRole(domain.RoleManager)(http.HandlerFunc(c.pendingOperations))).Methods(http.MethodGet)
	api.Handle("/bank/pools", requireRole(domain.RoleAdministrator)(http.HandlerFunc(c.pools))).Methods(http.MethodGet)
}

func (c *PortfolioController) portfolio(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, commons.ErrorResponse[models.PortfolioResponse]("unauthenticated"))
		return
	}

	response, err := c.service.Portfolio(r.Context(), principal.ClientID)
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *PortfolioController) pendingOperations(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.PendingOperations(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *PortfolioController) pools(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.Pools(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
