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

type TourHandler struct {
	service usecase.TourService
	log     *zap.Logger
}

func NewTourHandler(service usecase.TourService, log *zap.Logger) *TourHandler {
	return &TourHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour")),
	}
}

// GetTours handles GET /api/tours
func (h *TourHandler) GetTours(w http.ResponseWriter, r *http.Request) {
	params := filter.DecodeTourParams(r.URL.Query())

	tours, err := h.service.ListPublished(r.Context(), params)
	if err != nil {
		handleServiceError(w, h.log, err, "get tours")
		return
	}

	utils.ResponseSuccess(w, "Tours retrieved successfully", tours)
}

// GetAllTours handles GET /api/admin/tours
func (h *TourHandler) GetAllTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all tours")
		return
	}

	utils.ResponseSuccess(w, "Tours retrieved successfully", tours)
}

// GetTourByID handles GET /api/tours/{id}
func (h *TourHandler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	tour, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get tour by ID")
		return
	}

	utils.ResponseSuccess(w, "Tour retrieved successfully", tour)
}

// CreateTour handles POST /api/tours
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	var req request.TourRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tour, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create tour")
		return
	}

	utils.ResponseCreated(w, "Tour created successfully", tour)
}

// UpdateTour handles PUT /api/tours/{id}
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	var req request.TourRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	tour, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update tour")
		return
	}

	utils.ResponseSuccess(w, "Tour updated successfully", tour)
}

// DeleteTour handles DELETE /api/tours/{id}
func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete tour")
		return
	}

	utils.ResponseSuccess(w, "Tour deleted successfully", nil)
}

// CreateSchedule handles POST /api/tours/{id}/schedules
func (h *TourHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	schedule, err := h.service.AddSchedule(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, "Schedule created successfully", schedule)
}

// AddMotorcycle handles POST /api/tours/{id}/motorcycles
func (h *TourHandler) AddMotorcycle(w http.ResponseWriter, r *http.Request) {
	var req request.TourMotorcycleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	link, err := h.service.AddMotorcycle(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add tour motorcycle")
		return
	}

	utils.ResponseCreated(w, "Motorcycle added to tour", link)
}
