package get_users

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

type Handler struct {
	admin  AdminService
	logger Logger
}

func NewHandler(admin AdminService, logger Logger) *Handler {
	return &Handler{
		admin:  admin,
		logger: logger,
	}
}

// Handle GET /api/v1/admin/users?page=N&pageSize=M
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	if page < 1 {
		page = 1
	}

	users, err := h.admin.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list users: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(users, page))
}
