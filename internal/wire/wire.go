package wire

import (
	"net/http"

	"moto-tours/internal/adaptor"
	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/usecase"
	"moto-tours/pkg/cache"
	"moto-tours/pkg/middleware"
	"moto-tours/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router.
func Wiring(repo *repository.Repository, c cache.Cache, provider usecase.IdentityProvider, config *utils.Config, logger *zap.Logger) *App {
	tokens := utils.NewSessionTokens(config.Session)

	service := usecase.NewService(repo, c, tokens, provider, logger)
	handler := adaptor.NewHandler(service, config, logger)

	guard := &sessionGuard{
		tokens:     tokens,
		cookieName: config.Session.CookieName,
		users:      repo.User,
		log:        logger,
	}

	return &App{
		Router: setupRouter(handler, guard, config, logger),
	}
}

// sessionGuard hands out the auth middleware each route group needs.
type sessionGuard struct {
	tokens     *utils.SessionTokens
	cookieName string
	users      repository.UserRepository
	log        *zap.Logger
}

func (g *sessionGuard) Required() func(http.Handler) http.Handler {
	return middleware.AuthSession(g.tokens, g.cookieName, g.log)
}

func (g *sessionGuard) Optional() func(http.Handler) http.Handler {
	return middleware.OptionalSession(g.tokens, g.cookieName)
}

func (g *sessionGuard) Role(roles ...entity.UserRole) func(http.Handler) http.Handler {
	return middleware.RequireRole(g.users, g.log, roles...)
}

func setupRouter(
	handler *adaptor.Handler,
	guard *sessionGuard,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	wireAuth(r, handler.Auth, guard)
	wireUser(r, handler.User, guard)
	wireTour(r, handler.Tour, guard)
	wireMotorcycle(r, handler.Motorcycle, guard)
	wireBooking(r, handler.Booking, guard)
	wireDashboard(r, handler.Dashboard, guard)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
