package adaptor

import (
	"net/http"

	"moto-tours/internal/usecase"
	"moto-tours/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// GetTabs handles GET /api/dashboard/tabs
func (h *DashboardHandler) GetTabs(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	tabs, err := h.service.Tabs(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard tabs")
		return
	}

	utils.ResponseSuccess(w, "Tabs retrieved successfully", tabs)
}

// GetOverview handles GET /api/dashboard/overview
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	overview, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get dashboard overview")
		return
	}

	utils.ResponseSuccess(w, "Overview retrieved successfully", overview)
}
