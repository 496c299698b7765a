package wire

import (
	"moto-tours/internal/adaptor"
	"moto-tours/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireMotorcycle(r chi.Router, motorcycleHandler *adaptor.MotorcycleHandler, guard *sessionGuard) {
	r.Get("/api/motorcycles", motorcycleHandler.GetMotorcycles)
	r.Get("/api/motorcycles/{id}", motorcycleHandler.GetMotorcycleByID)

	r.With(
		guard.Required(),
		guard.Role(entity.RoleAdmin),
	).Post("/api/admin/motorcycles", motorcycleHandler.CreateMotorcycle)
}
