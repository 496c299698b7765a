package middleware

import (
	"net/http"
	"strings"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/repository"
	"moto-tours/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionToken extracts the session token from the Authorization header or the session cookie.
func SessionToken(r *http.Request, cookieName string) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// AuthSession rejects requests without a valid session and puts id/role into the context.
func AuthSession(tokens *utils.SessionTokens, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r, cookieName)
			if token == "" {
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				logger.Warn("Session carries malformed user id", zap.String("user_id", claims.UserID))
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			ctx = utils.SetSessionContext(ctx, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession decorates the context when a valid session is present and never rejects.
func OptionalSession(tokens *utils.SessionTokens, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r, cookieName)
			if token != "" {
				if claims, err := tokens.Parse(token); err == nil {
					if userID, err := uuid.Parse(claims.UserID); err == nil {
						ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
						r = r.WithContext(utils.SetSessionContext(ctx, claims))
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole re-reads the user's role from storage so demotions apply before the session expires.
func RequireRole(userRepo repository.UserRepository, logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Role check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				utils.ResponseUnauthorized(w, "Unauthorized")
				return
			}

			for _, role := range roles {
				if user.EffectiveRole() == role {
					ctx := utils.SetUserContext(r.Context(), userID, string(user.EffectiveRole()))
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			logger.Warn("Role check: access denied",
				zap.String("user_id", userID.String()),
				zap.String("role", string(user.EffectiveRole())),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "Insufficient permissions")
		})
	}
}
