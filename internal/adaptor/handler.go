package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"moto-tours/internal/dto/request"
	"moto-tours/internal/usecase"
	"moto-tours/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Tour       *TourHandler
	Motorcycle *MotorcycleHandler
	Booking    *BookingHandler
	Dashboard  *DashboardHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, config, log),
		User:       NewUserHandler(service.User, log),
		Tour:       NewTourHandler(service.Tour, log),
		Motorcycle: NewMotorcycleHandler(service.Motorcycle, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Dashboard:  NewDashboardHandler(service.Dashboard, log),
	}
}

// handleServiceError maps service error categories to status codes. Anything unclassified is
// logged and answered with a generic 500 so driver details never reach the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, "Unauthorized")

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, context.Canceled):
		log.Info(operation+" canceled by client", zap.Error(err))

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// paginationFromQuery reads page/per_page with defaults 1 and 10. Non-numeric or out of range
// values are a validation error.
func paginationFromQuery(r *http.Request) (*request.PaginatedRequest, error) {
	query := r.URL.Query()
	req := request.NewPaginatedRequest()
	fields := map[string]string{}

	var err error
	if req.Page, err = utils.ParseInt(query.Get("page"), request.DefaultPage); err != nil {
		fields["Page"] = "Must be a whole number"
	}
	if req.PerPage, err = utils.ParseInt(query.Get("per_page"), request.DefaultPerPage); err != nil {
		fields["PerPage"] = "Must be a whole number"
	}
	if len(fields) > 0 {
		return nil, &usecase.ValidationError{Fields: fields}
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &usecase.ValidationError{Fields: errs}
	}
	return req, nil
}
