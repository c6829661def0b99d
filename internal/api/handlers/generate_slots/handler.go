package generate_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange       = "некорректный диапазон дат"
	msgInvalidWindow      = "некорректное временное окно, ожидается HH:MM-HH:MM"
)

type Handler struct {
	catalog     CatalogService
	horizonDays int
	windows     []domain.TimeWindow
	metrics     *metrics.Metrics
	logger      Logger
}

// NewHandler создает handler генерации слотов.
// horizonDays и windows - значения по умолчанию из конфигурации,
// запрос может их переопределить.
func NewHandler(catalog CatalogService, horizonDays int, windows []domain.TimeWindow, collector *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		catalog:     catalog,
		horizonDays: horizonDays,
		windows:     windows,
		metrics:     collector,
		logger:      logger,
	}
}

// GenerateSlotsRequest HTTP request model, все поля опциональны
type GenerateSlotsRequest struct {
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Windows  []string `json:"windows,omitempty"`
	BaseCost int64    `json:"baseCost,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Created int `json:"created"`
}

// Handle POST /api/v1/admin/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSlotsRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /admin/slots/generate - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	now := time.Now()
	from, to := now, now.AddDate(0, 0, h.horizonDays)
	var err error
	if req.From != "" {
		if from, err = time.Parse(domain.DateFormat, req.From); err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if req.To != "" {
		if to, err = time.Parse(domain.DateFormat, req.To); err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	windows := h.windows
	if len(req.Windows) > 0 {
		windows = make([]domain.TimeWindow, 0, len(req.Windows))
		for _, win := range req.Windows {
			windows = append(windows, domain.TimeWindow(win))
		}
	}

	created, err := h.catalog.GenerateSlots(r.Context(), from, to, windows, req.BaseCost)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, catalog.ErrInvalidWindow):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /admin/slots/generate - Failed to generate slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.SlotsGenerated.Add(float64(created))
	}

	handlers.RespondJSON(w, http.StatusOK, &GenerateSlotsResponse{Created: created})
}
