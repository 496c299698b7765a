package wire

import (
	"moto-tours/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, guard *sessionGuard) {
	r.With(guard.Required()).Route("/api/dashboard", func(r chi.Router) {
		r.Get("/tabs", dashboardHandler.GetTabs)
		r.Get("/overview", dashboardHandler.GetOverview)
	})
}
