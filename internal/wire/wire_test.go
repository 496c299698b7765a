package wire

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moto-tours/internal/data/repository"
	"moto-tours/internal/usecase"
	"moto-tours/pkg/cache"
	"moto-tours/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestApp serves the motorcycle catalog from fixtures; routes needing Postgres are not hit.
func newTestApp(t *testing.T) *App {
	t.Helper()
	config := &utils.Config{
		App:     utils.AppConfig{BaseURL: "http://localhost:3000"},
		Session: utils.SessionConfig{Secret: "wire-secret", CookieName: "session-token"},
		CORS:    utils.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	log := zap.NewNop()
	repo := repository.NewRepository(nil, true, log)
	return Wiring(repo, cache.Nop{}, usecase.NewGoogleProvider(config.OAuth), config, log)
}

func serve(app *App, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newTestApp(t), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMotorcycleCatalogFromFixtures(t *testing.T) {
	app := newTestApp(t)

	rec := serve(app, http.MethodGet, "/api/motorcycles?category=ADVENTURE")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Make string `json:"make"`
			Type string `json:"type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data)
	for _, m := range resp.Data {
		assert.Equal(t, "ADVENTURE", m.Type)
	}
}

func TestProtectedRoutesNeedASession(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/bookings"},
		{http.MethodPost, "/api/bookings"},
		{http.MethodGet, "/api/user/profile"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/admin/bookings"},
		{http.MethodPost, "/api/tours"},
		{http.MethodDelete, "/api/tours/6f1c2a4e-0000-4000-8000-000000000001"},
		{http.MethodGet, "/api/dashboard/tabs"},
	} {
		rec := serve(app, route.method, route.path)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestSessionEndpointSignedOut(t *testing.T) {
	rec := serve(newTestApp(t), http.MethodGet, "/api/auth/session")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestSignInRedirectsToProvider(t *testing.T) {
	rec := serve(newTestApp(t), http.MethodGet, "/api/auth/signin/google")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "accounts.google.com")
}
