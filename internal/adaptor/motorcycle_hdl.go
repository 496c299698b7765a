package adaptor

import (
	"net/http"

	"moto-tours/internal/data/filter"
	"moto-tours/internal/dto/request"
	"moto-tours/internal/usecase"
	"moto-tours/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MotorcycleHandler struct {
	service usecase.MotorcycleService
	log     *zap.Logger
}

func NewMotorcycleHandler(service usecase.MotorcycleService, log *zap.Logger) *MotorcycleHandler {
	return &MotorcycleHandler{
		service: service,
		log:     log.With(zap.String("handler", "motorcycle")),
	}
}

// GetMotorcycles handles GET /api/motorcycles
func (h *MotorcycleHandler) GetMotorcycles(w http.ResponseWriter, r *http.Request) {
	motorcycles, err := h.service.List(r.Context(), filter.DecodeMotorcycleParams(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "get motorcycles")
		return
	}

	utils.ResponseSuccess(w, "Motorcycles retrieved successfully", motorcycles)
}

// GetMotorcycleByID handles GET /api/motorcycles/{id}
func (h *MotorcycleHandler) GetMotorcycleByID(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get motorcycle by ID")
		return
	}

	utils.ResponseSuccess(w, "Motorcycle retrieved successfully", m)
}

// CreateMotorcycle handles POST /api/admin/motorcycles
func (h *MotorcycleHandler) CreateMotorcycle(w http.ResponseWriter, r *http.Request) {
	var req request.MotorcycleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	m, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create motorcycle")
		return
	}

	utils.ResponseCreated(w, "Motorcycle created successfully", m)
}
