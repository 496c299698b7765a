package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/dto/response"
	"moto-tours/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Identity is what the sign-in provider tells us about the user.
type Identity struct {
	Email   string
	Name    string
	Picture string
}

// IdentityProvider runs the delegated OAuth2 code flow.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

type googleProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleProvider(cfg utils.OAuthConfig) IdentityProvider {
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}

	var info struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if !info.EmailVerified {
		return nil, fmt.Errorf("email %s is not verified", info.Email)
	}

	return &Identity{Email: info.Email, Name: info.Name, Picture: info.Picture}, nil
}

// SignIn is the outcome of a completed sign-in.
type SignIn struct {
	Token     string
	ExpiresAt time.Time
	User      response.UserResponse
}

type AuthService interface {
	// SignInURL returns the provider URL and the state value the callback must echo.
	SignInURL() (string, string, error)
	CompleteSignIn(ctx context.Context, code string) (*SignIn, error)
	Session(claims *utils.SessionClaims) response.SessionResponse
}

type authService struct {
	userRepo repository.UserRepository
	provider IdentityProvider
	tokens   *utils.SessionTokens
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, provider IdentityProvider, tokens *utils.SessionTokens, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		provider: provider,
		tokens:   tokens,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignInURL() (string, string, error) {
	state, err := utils.GenerateState()
	if err != nil {
		return "", "", err
	}
	return s.provider.AuthCodeURL(state), state, nil
}

func (s *authService) CompleteSignIn(ctx context.Context, code string) (*SignIn, error) {
	if strings.TrimSpace(code) == "" {
		return nil, newError(ErrUnauthorized, "unauthorized: missing authorization code")
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.log.Warn("OAuth exchange failed", zap.Error(err))
		return nil, newError(ErrUnauthorized, "unauthorized: sign-in was not completed")
	}
	if identity.Email == "" {
		return nil, newError(ErrUnauthorized, "unauthorized: provider returned no email")
	}

	user := &entity.User{
		Base:  entity.NewBase(time.Now()),
		Name:  identity.Name,
		Email: strings.ToLower(identity.Email),
		Role:  entity.RoleCustomer,
	}
	if identity.Picture != "" {
		user.Image = &identity.Picture
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	picture := ""
	if user.Image != nil {
		picture = *user.Image
	}
	token, expiresAt, err := s.tokens.Issue(utils.SessionClaims{
		UserID:  user.ID.String(),
		Role:    string(user.EffectiveRole()),
		Name:    user.Name,
		Email:   user.Email,
		Picture: picture,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed in", zap.String("user_id", user.ID.String()), zap.String("role", string(user.EffectiveRole())))

	return &SignIn{Token: token, ExpiresAt: expiresAt, User: response.UserToResponse(user)}, nil
}

// Session renders the client-visible session; nil claims give the signed-out shape {}.
func (s *authService) Session(claims *utils.SessionClaims) response.SessionResponse {
	if claims == nil {
		return response.SessionResponse{}
	}

	user := &response.SessionUser{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  string(entity.NormalizeRole(claims.Role)),
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.Image = &picture
	}

	resp := response.SessionResponse{User: user}
	if claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.Time
		resp.Expires = &expires
	}
	return resp
}
