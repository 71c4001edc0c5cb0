package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/http/models"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/commons"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
)

type RateService interface {
	GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error)
}

type RateController struct {
	service RateService
}

func NewRateController(service RateService) *RateController {
	return &RateController{service: service}
}

// Rates are display-only and not sensitive, so the route is open to any
// authenticated principal regardless of role.
func (c *RateController) RegisterRoutes(api *mux.Router, _ func(domain.Role) func(http.Handler) http.Handler) {
	api.Handle("/rates", http.HandlerFunc(c.rates)).Methods(http.MethodGet)
}

func (c *RateController) rates(w http.ResponseWriter, r *http.Request) {
	response, err := c.service.GetRates(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
