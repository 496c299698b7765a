package wire

import (
	"moto-tours/internal/adaptor"
	"moto-tours/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, guard *sessionGuard) {
	r.With(guard.Required()).Get("/api/user/profile", userHandler.GetProfile)

	r.With(
		guard.Required(),
		guard.Role(entity.RoleAdmin),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers) // ?page=1&per_page=10
		r.Put("/{id}/role", userHandler.UpdateRole)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
