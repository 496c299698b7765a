package wire

import (
	"moto-tours/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, guard *sessionGuard) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/signin/google", authHandler.SignInGoogle)
		r.Get("/callback/google", authHandler.CallbackGoogle)
		r.With(guard.Optional()).Get("/session", authHandler.GetSession)
		r.Post("/signout", authHandler.SignOut)
	})
}
