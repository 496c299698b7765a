package wire

import (
	"moto-tours/internal/adaptor"
	"moto-tours/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireTour(r chi.Router, tourHandler *adaptor.TourHandler, guard *sessionGuard) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/tours", tourHandler.GetTours)
	r.Get("/api/tours/{id}", tourHandler.GetTourByID)

	// ==================== STAFF ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(guard.Required())
		r.Use(guard.Role(entity.RoleAdmin, entity.RoleGuide))

		r.Get("/api/admin/tours", tourHandler.GetAllTours)
		r.Post("/api/tours", tourHandler.CreateTour)
		r.Put("/api/tours/{id}", tourHandler.UpdateTour)
		r.Post("/api/tours/{id}/schedules", tourHandler.CreateSchedule)
		r.Post("/api/tours/{id}/motorcycles", tourHandler.AddMotorcycle)
	})

	r.With(
		guard.Required(),
		guard.Role(entity.RoleAdmin),
	).Delete("/api/tours/{id}", tourHandler.DeleteTour)
}
