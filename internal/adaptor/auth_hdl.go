package adaptor

import (
	"net/http"
	"time"

	"moto-tours/internal/usecase"
	"moto-tours/pkg/utils"

	"go.uber.org/zap"
)

const stateCookieName = "oauth_state"

type AuthHandler struct {
	service usecase.AuthService
	session utils.SessionConfig
	baseURL string
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		session: config.Session,
		baseURL: config.App.BaseURL,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignInGoogle handles GET /api/auth/signin/google
func (h *AuthHandler) SignInGoogle(w http.ResponseWriter, r *http.Request) {
	url, state, err := h.service.SignInURL()
	if err != nil {
		handleServiceError(w, h.log, err, "start sign-in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusFound)
}

// CallbackGoogle handles GET /api/auth/callback/google
func (h *AuthHandler) CallbackGoogle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != query.Get("state") {
		h.log.Warn("OAuth state mismatch")
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}
	h.clearCookie(w, stateCookieName, "/api/auth")

	signIn, err := h.service.CompleteSignIn(r.Context(), query.Get("code"))
	if err != nil {
		handleServiceError(w, h.log, err, "complete sign-in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    signIn.Token,
		Path:     "/",
		Expires:  signIn.ExpiresAt,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.baseURL, http.StatusFound)
}

// GetSession handles GET /api/auth/session; the body is {} when signed out.
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	claims, _ := utils.GetSessionFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.service.Session(claims))
}

// SignOut handles POST /api/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, h.session.CookieName, "/")
	utils.ResponseSuccess(w, "Signed out", nil)
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
