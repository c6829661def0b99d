package update_category_rate

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCategory    = "неизвестная категория"
	msgInvalidCost        = "цена должна быть положительной"
	msgRateNotFound       = "тариф категории не найден"
)

type Handler struct {
	catalog CatalogService
	logger  Logger
}

func NewHandler(catalog CatalogService, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// UpdateRateRequest HTTP request model
type UpdateRateRequest struct {
	SessionCost int64 `json:"sessionCost"`
}

// RateResponse HTTP модель тарифа
type RateResponse struct {
	Category    string `json:"category"`
	SessionCost int64  `json:"sessionCost"`
}

// RatesResponse HTTP модель списка тарифов
type RatesResponse struct {
	Rates []RateResponse `json:"rates"`
}

// HandleUpdate PUT /api/v1/admin/rates/{category}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	category, ok := domain.ParseUserCategory(mux.Vars(r)["category"])
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidCategory)
		return
	}

	var req UpdateRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/rates/{category} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.catalog.ChangeCategoryRate(r.Context(), category, req.SessionCost); err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidCost):
			handlers.RespondBadRequest(w, msgInvalidCost)

		case errors.Is(err, catalog.ErrRateNotFound):
			handlers.RespondNotFound(w, msgRateNotFound)

		default:
			h.logger.Error("PUT /admin/rates/{category} - Failed to update rate: category=%s, error=%v",
				category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &RateResponse{
		Category:    string(category),
		SessionCost: req.SessionCost,
	})
}

// HandleList GET /api/v1/admin/rates
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	rates, err := h.catalog.ListRates(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/rates - Failed to list rates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := &RatesResponse{Rates: make([]RateResponse, 0, len(rates))}
	for _, rate := range rates {
		resp.Rates = append(resp.Rates, RateResponse{
			Category:    string(rate.Category),
			SessionCost: rate.SessionCost,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
