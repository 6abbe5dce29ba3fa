package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resto-dashboard/internal/session"
	"resto-dashboard/internal/storage"
	"resto-dashboard/pkg/service"
	"resto-dashboard/pkg/utils"
)

type stubResolver struct {
	perms map[string]bool
	calls int
}

func (s *stubResolver) Resolve(context.Context, *session.Store) (map[string]bool, error) {
	s.calls++
	return s.perms, nil
}

type fixture struct {
	e        *echo.Echo
	kv       storage.KeyValueStore
	jwt      service.JWTService
	resolver *stubResolver
}

func newFixture() *fixture {
	kv := storage.NewMemory()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	resolver := &stubResolver{perms: map[string]bool{"orders:view": true}}
	m := NewAuthMiddleware(jwtSvc, session.NewManager(kv, nil, zap.NewNop()), resolver, CookieConfig{Name: "sid"}, zap.NewNop())

	e := echo.New()
	e.Use(m.Session)
	ok := func(c echo.Context) error {
		store, err := utils.GetSessionFromCtx(c.Request().Context())
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, store.ID())
	}
	e.GET("/open", ok)
	e.GET("/private", ok, m.Auth)
	e.GET("/orders", ok, m.AuthorizeAny("orders:view"))
	e.GET("/payroll", ok, m.AuthorizeAny("payroll:manage", "feature:payroll_beta"))

	return &fixture{e: e, kv: kv, jwt: jwtSvc, resolver: resolver}
}

func (f *fixture) do(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

// signIn выдаёт cookie сессии, в которой уже лежит access-токен.
func (f *fixture) signIn(t *testing.T, sessionID string) *http.Cookie {
	t.Helper()
	require.NoError(t, storage.NewBridge(f.kv, sessionID).SetTokens(context.Background(), "acc", "ref"))
	token, err := f.jwt.GenerateSessionToken(sessionID)
	require.NoError(t, err)
	return &http.Cookie{Name: "sid", Value: token}
}

func TestSessionIssuesCookieForNewVisitor(t *testing.T) {
	f := newFixture()
	rec := f.do(t, "/open", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := f.jwt.ValidateToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, claims.SessionID, rec.Body.String())
}

func TestSessionReusesValidCookie(t *testing.T) {
	f := newFixture()
	cookie := f.signIn(t, "known")

	rec := f.do(t, "/open", cookie)
	assert.Equal(t, "known", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionReplacesForgedCookie(t *testing.T) {
	f := newFixture()
	rec := f.do(t, "/open", &http.Cookie{Name: "sid", Value: "garbage"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "garbage", rec.Body.String())
}

func TestAuthRejectsAnonymousWithRedirect(t *testing.T) {
	f := newFixture()
	rec := f.do(t, "/private", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "/login", body["body"].(map[string]interface{})["redirect"])
}

func TestAuthAllowsSignedIn(t *testing.T) {
	f := newFixture()
	rec := f.do(t, "/private", f.signIn(t, "s1"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizeAny(t *testing.T) {
	f := newFixture()
	cookie := f.signIn(t, "s1")

	assert.Equal(t, http.StatusOK, f.do(t, "/orders", cookie).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, "/payroll", cookie).Code)

	f.resolver.perms["feature:payroll_beta"] = true
	assert.Equal(t, http.StatusOK, f.do(t, "/payroll", cookie).Code)
}

func TestAuthorizeAnySuperuser(t *testing.T) {
	f := newFixture()
	f.resolver.perms = map[string]bool{"superuser": true}
	assert.Equal(t, http.StatusOK, f.do(t, "/payroll", f.signIn(t, "s1")).Code)
}

func TestAuthorizeAnyAnonymousIs401(t *testing.T) {
	f := newFixture()
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/orders", nil).Code)
	assert.Zero(t, f.resolver.calls)
}
