package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/championship-tracker/brackets"
	"github.com/Dosada05/championship-tracker/handlers"
	"github.com/Dosada05/championship-tracker/models"
)

type stubService struct{}

func (stubService) GetBracket(ctx context.Context, id int) (*brackets.Result, error) {
	return &brackets.Result{Template: brackets.DefaultTemplate()}, nil
}
func (stubService) GetStandings(ctx context.Context, id int) (brackets.GroupTables, error) {
	return brackets.GroupTables{}, nil
}
func (stubService) GetCustomSeeding(ctx context.Context, id int) (*models.CustomSeeding, error) {
	return &models.CustomSeeding{}, nil
}
func (stubService) SetCustomSeeding(ctx context.Context, id int, s models.CustomSeeding) (*brackets.Result, error) {
	return &brackets.Result{Template: brackets.DefaultTemplate()}, nil
}
func (stubService) ClearCustomSeeding(ctx context.Context, id int) (*brackets.Result, error) {
	return &brackets.Result{Template: brackets.DefaultTemplate()}, nil
}
func (stubService) UploadFixture(ctx context.Context, id int, r io.Reader) (*brackets.Template, error) {
	return brackets.DefaultTemplate(), nil
}
func (stubService) PreviewSchedule(ctx context.Context, id int) ([]*models.Game, error) {
	return nil, nil
}

const secret = "routes-secret"

func newRouter() http.Handler {
	svc := stubService{}
	router := chi.NewRouter()
	SetupRoutes(router, Options{
		JWTSecret:      secret,
		AllowedOrigins: []string{"https://bracket.example.com"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}, handlers.NewBracketHandler(svc), handlers.NewWebSocketHandler(brackets.NewHub(), svc))
	return router
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndDocs(t *testing.T) {
	router := newRouter()

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"openapi"`)
}

func TestPublicRoutes(t *testing.T) {
	router := newRouter()
	for _, path := range []string{"/bracket", "/standings", "/seeding", "/schedule/preview"} {
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/tournaments/1"+path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newRouter()
	body := `{"seed1":"CAN","seed2":"SWE","seed3":"USA","seed4":"FIN"}`

	rec := serve(router, httptest.NewRequest(http.MethodPut, "/tournaments/1/seeding", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "role": "admin"}).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/tournaments/1/seeding", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, serve(router, req).Code)

	req = httptest.NewRequest(http.MethodDelete, "/tournaments/1/seeding", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, serve(router, req).Code)

	req = httptest.NewRequest(http.MethodPut, "/tournaments/1/fixture", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, serve(router, req).Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodOptions, "/tournaments/1/seeding", nil)
	req.Header.Set("Origin", "https://bracket.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := serve(router, req)
	assert.Equal(t, "https://bracket.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/tournaments/1/bracket", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = serve(router, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
