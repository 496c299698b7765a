package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	identity *Identity
	err      error
	codes    []string
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (*Identity, error) {
	p.codes = append(p.codes, code)
	return p.identity, p.err
}

func testTokens() *utils.SessionTokens {
	return utils.NewSessionTokens(utils.SessionConfig{Secret: "test-secret", ExpiryDays: 30})
}

func TestSignInURLCarriesState(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), &fakeProvider{}, testTokens(), zap.NewNop())

	url, state, err := svc.SignInURL()
	require.NoError(t, err)
	assert.NotEmpty(t, state)
	assert.Contains(t, url, "state="+state)
}

func TestCompleteSignInCreatesCustomer(t *testing.T) {
	users := newFakeUserRepo()
	tokens := testTokens()
	provider := &fakeProvider{identity: &Identity{Email: "Ana@Example.com", Name: "Ana", Picture: "https://img/ana.png"}}
	svc := NewAuthService(users, provider, tokens, zap.NewNop())

	signIn, err := svc.CompleteSignIn(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "CUSTOMER", signIn.User.Role)
	assert.Equal(t, "ana@example.com", signIn.User.Email)
	assert.Equal(t, []string{"code-1"}, provider.codes)

	claims, err := tokens.Parse(signIn.Token)
	require.NoError(t, err)
	assert.Equal(t, signIn.User.ID, claims.UserID)
	assert.Equal(t, "CUSTOMER", claims.Role)
	assert.Equal(t, "https://img/ana.png", claims.Picture)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), signIn.ExpiresAt, time.Minute)
}

func TestCompleteSignInKeepsStoredRole(t *testing.T) {
	admin := newUser("boss@example.com", entity.RoleAdmin)
	provider := &fakeProvider{identity: &Identity{Email: "boss@example.com", Name: "Boss"}}
	svc := NewAuthService(newFakeUserRepo(admin), provider, testTokens(), zap.NewNop())

	signIn, err := svc.CompleteSignIn(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), signIn.User.ID)
	assert.Equal(t, "ADMIN", signIn.User.Role)
}

func TestCompleteSignInFailures(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), &fakeProvider{err: errors.New("bad code")}, testTokens(), zap.NewNop())

	_, err := svc.CompleteSignIn(context.Background(), "")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = svc.CompleteSignIn(context.Background(), "code")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	svc = NewAuthService(newFakeUserRepo(), &fakeProvider{identity: &Identity{Name: "No Mail"}}, testTokens(), zap.NewNop())
	_, err = svc.CompleteSignIn(context.Background(), "code")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestSessionShape(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), &fakeProvider{}, testTokens(), zap.NewNop())

	empty := svc.Session(nil)
	assert.Nil(t, empty.User)
	assert.Nil(t, empty.Expires)

	expires := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	session := svc.Session(&utils.SessionClaims{
		UserID:           "u-1",
		Role:             "PILOT",
		Name:             "Ana",
		Email:            "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
	})
	require.NotNil(t, session.User)
	assert.Equal(t, "CUSTOMER", session.User.Role)
	assert.Nil(t, session.User.Image)
	require.NotNil(t, session.Expires)
	assert.True(t, expires.Equal(*session.Expires))
}
