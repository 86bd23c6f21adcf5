package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"freightquote/internal/middleware"
	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/pkg/config"
	"freightquote/pkg/jwtutil"
	"freightquote/prometheus"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		Metrics: config.MetricsConfig{Prefix: "mwtest"},
		JWT:     config.JWTConfig{SigningKey: "test_secret", ExpirationTime: time.Hour},
	}
	prometheus.InitMetrics(cfg)
	jwtutil.Initialize(&cfg.JWT)
	os.Exit(m.Run())
}

type userStore struct {
	user *model.User
}

func (s *userStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, storage.ErrNotFound
	}
	return s.user, nil
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}

func TestAuthRejectsAnonymous(t *testing.T) {
	e := echo.New()
	mw := middleware.Auth(&userStore{}, sessions.NewCookieStore([]byte("test")))

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication required", body["message"])
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	e := echo.New()
	mw := middleware.Auth(&userStore{}, sessions.NewCookieStore([]byte("test")))

	token, err := jwtutil.GenerateToken(5, "driver@fast.com", model.RoleCarrier)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(5), c.Get("user_id"))
	assert.Equal(t, model.RoleCarrier, c.Get("role"))
}

func TestAuthRejectsBadToken(t *testing.T) {
	e := echo.New()
	mw := middleware.Auth(&userStore{}, sessions.NewCookieStore([]byte("test")))

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthAcceptsSessionCookie(t *testing.T) {
	e := echo.New()
	sessionStore := sessions.NewCookieStore([]byte("test"))
	user := &model.User{ID: 3, Username: "client@tech.com", Role: model.RoleClient}
	mw := middleware.Auth(&userStore{user: user}, sessionStore)

	// Build a signed session cookie the way login would
	seedReq := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	seedRec := httptest.NewRecorder()
	sess, err := sessionStore.Get(seedReq, middleware.SessionName)
	require.NoError(t, err)
	sess.Values["user_id"] = uint(3)
	require.NoError(t, sess.Save(seedReq, seedRec))
	cookies := seedRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), c.Get("user_id"))
	assert.Equal(t, model.RoleClient, c.Get("role"))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	mw := middleware.RequireRole(model.RoleAdmin, model.RoleAuditor)

	req := httptest.NewRequest(http.MethodGet, "/api/audit-logs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", model.RoleAuditor)

	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOthers(t *testing.T) {
	e := echo.New()
	mw := middleware.RequireRole(model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", model.RoleCarrier)

	require.NoError(t, mw(okHandler)(c))

	// Indistinguishable from an unauthenticated request
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}
