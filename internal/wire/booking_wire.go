package wire

import (
	"moto-tours/internal/adaptor"
	"moto-tours/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, guard *sessionGuard) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(guard.Required())

		r.Get("/api/bookings", bookingHandler.GetMyBookings) // ?status=&sortBy=
		r.Post("/api/bookings", bookingHandler.CreateBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(guard.Required())
		r.Use(guard.Role(entity.RoleAdmin))

		r.Get("/", bookingHandler.GetAllBookings)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
