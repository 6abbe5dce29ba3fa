package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"resto-dashboard/internal/dto"
	"resto-dashboard/internal/storage"
	"resto-dashboard/pkg/config"
	"resto-dashboard/pkg/eventbus"
	applogger "resto-dashboard/pkg/logger"
	"resto-dashboard/pkg/metrics"
	"resto-dashboard/pkg/validation"
	"resto-dashboard/pkg/websocket"
)

const testCookie = "resto_session"

// fakeBackend - удалённый API ресторана в памяти.
type fakeBackend struct {
	mu          sync.Mutex
	codes       []string
	roles       []string
	outletSeen  []string
	deviceSeen  []string
	logoutCalls int
}

func (f *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "token expired"})
			return false
		}
		return true
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body dto.LoginDTO
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret-pass" {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]string{"message": "Неверный email или пароль"})
			return
		}
		writeJSON(w, dto.TokenPairDTO{AccessToken: "acc-1", RefreshToken: "ref-1"})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.logoutCalls++
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		f.mu.Lock()
		roles := append([]string(nil), f.roles...)
		f.mu.Unlock()
		writeJSON(w, dto.MeDTO{ID: "u1", Email: "owner@resto.tj", FullName: "Владелец", Roles: roles})
	})
	mux.HandleFunc("GET /auth/me/permissions", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		f.mu.Lock()
		codes := append([]string(nil), f.codes...)
		f.mu.Unlock()
		writeJSON(w, dto.PermissionsDTO{Codes: codes, Features: map[string]bool{"qr_payments": false}})
	})
	mux.HandleFunc("GET /restaurants", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, []dto.RestaurantDTO{{ID: "r1", Name: "Чайхана"}, {ID: "r2", Name: "Пиццерия"}})
	})
	mux.HandleFunc("GET /restaurants/r1/outlets", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		writeJSON(w, []dto.OutletDTO{
			{ID: "o1", RestaurantID: "r1", Name: "Центр"},
			{ID: "o2", RestaurantID: "r1", Name: "Аэропорт", IsDefault: true},
		})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		f.mu.Lock()
		f.outletSeen = append(f.outletSeen, r.Header.Get("X-Outlet-Id"))
		f.mu.Unlock()
		writeJSON(w, dto.ListDTO[dto.OrderDTO]{
			Items: []dto.OrderDTO{{ID: "ord-1", Number: "A-17", OutletID: r.Header.Get("X-Outlet-Id"), Status: "open", Total: 42.5}},
			Total: 1,
		})
	})
	mux.HandleFunc("POST /public/qr/dynamic", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.deviceSeen = append(f.deviceSeen, r.Header.Get("X-Device-Id"))
		f.mu.Unlock()
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, dto.QRSessionDTO{SessionID: "qr-1", TableID: "t5", TableName: "Стол 5", OutletID: "o1"})
	})
	return mux
}

type RouterTestSuite struct {
	suite.Suite
	Echo    *echo.Echo
	Backend *httptest.Server
	Fake    *fakeBackend
}

func (suite *RouterTestSuite) SetupTest() {
	suite.Fake = &fakeBackend{
		roles: []string{dto.RoleOwner},
		codes: []string{"orders:view", "restaurants:view"},
	}
	suite.Backend = httptest.NewServer(suite.Fake.handler(suite.T()))

	cfg := &config.Config{
		Backend: config.BackendConfig{BaseURL: suite.Backend.URL, Timeout: 5 * time.Second},
		Storage: config.StorageConfig{Driver: storage.DriverMemory, TTL: time.Hour},
		Session: config.SessionConfig{SecretKey: "router-test-secret", TTL: time.Hour, CookieName: testCookie},
		Public:  config.PublicConfig{OrderPollInterval: time.Minute},
	}
	loggers := applogger.NewNopLoggers()

	e := echo.New()
	v, err := validation.New()
	require.NoError(suite.T(), err)
	e.Validator = v

	watcher := InitRouter(e, Dependencies{
		Config:  cfg,
		Storage: storage.NewMemory(),
		Bus:     eventbus.New(loggers.Main),
		Hub:     websocket.NewHub(loggers.Public),
		Metrics: metrics.New(),
		Loggers: loggers,
	})
	require.NotNil(suite.T(), watcher)
	suite.Echo = e
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.Backend.Close()
}

// do выполняет запрос и обновляет cookie сессии, если сервер выдал новую.
func (suite *RouterTestSuite) do(method, target string, body interface{}, cookie **http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil && *cookie != nil {
		req.AddCookie(*cookie)
	}
	rec := httptest.NewRecorder()
	suite.Echo.ServeHTTP(rec, req)

	if cookie != nil {
		for _, c := range rec.Result().Cookies() {
			if c.Name == testCookie {
				*cookie = c
			}
		}
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (suite *RouterTestSuite) login() *http.Cookie {
	var cookie *http.Cookie
	rec := suite.do(http.MethodPost, "/api/auth/login", dto.LoginDTO{Email: "owner@resto.tj", Password: "secret-pass"}, &cookie)
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(suite.T(), cookie)
	return cookie
}

func (suite *RouterTestSuite) TestAnonymousGetsRedirect() {
	var cookie *http.Cookie
	rec := suite.do(http.MethodGet, "/api/context", nil, &cookie)

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	body := decodeBody(suite.T(), rec)
	assert.Equal(suite.T(), false, body["status"])
	assert.Equal(suite.T(), map[string]interface{}{"redirect": "/login"}, body["body"])
	require.NotNil(suite.T(), cookie, "новая сессия должна получить cookie")
	assert.True(suite.T(), cookie.HttpOnly)
}

func (suite *RouterTestSuite) TestLoginWrongPassword() {
	var cookie *http.Cookie
	rec := suite.do(http.MethodPost, "/api/auth/login", dto.LoginDTO{Email: "owner@resto.tj", Password: "wrong-pass"}, &cookie)

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "Неверный email или пароль", decodeBody(suite.T(), rec)["message"])

	rec = suite.do(http.MethodGet, "/api/context", nil, &cookie)
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *RouterTestSuite) TestLoginValidation() {
	rec := suite.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"}, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestSwitcherAutoSelectsAndScopesOrders() {
	cookie := suite.login()

	// Без точки заказы недоступны.
	rec := suite.do(http.MethodGet, "/api/orders", nil, &cookie)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "Сначала выберите ресторан и точку", decodeBody(suite.T(), rec)["message"])

	rec = suite.do(http.MethodGet, "/api/context/options", nil, &cookie)
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	switcher := decodeBody(suite.T(), rec)["body"].(map[string]interface{})
	assert.Equal(suite.T(), true, switcher["can_switch"])
	current := switcher["current"].(map[string]interface{})
	assert.Equal(suite.T(), "r1", current["restaurant_id"])
	assert.Equal(suite.T(), "o2", current["outlet_id"], "выбирается точка по умолчанию")

	rec = suite.do(http.MethodGet, "/api/orders", nil, &cookie)
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	list := decodeBody(suite.T(), rec)["body"].(map[string]interface{})
	assert.Len(suite.T(), list["list"], 1)
	pagination := list["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), pagination["total_count"])
	assert.Equal(suite.T(), float64(1), pagination["page"])

	suite.Fake.mu.Lock()
	assert.Equal(suite.T(), []string{"o2"}, suite.Fake.outletSeen)
	suite.Fake.mu.Unlock()
}

func (suite *RouterTestSuite) TestOrdersExportXLSX() {
	cookie := suite.login()
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodGet, "/api/context/options", nil, &cookie).Code)

	rec := suite.do(http.MethodGet, "/api/orders?format=xlsx", nil, &cookie)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Header().Get(echo.HeaderContentType), "spreadsheetml")
	assert.True(suite.T(), strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment; filename=orders_"))
	assert.True(suite.T(), bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx - это zip-архив")
}

func (suite *RouterTestSuite) TestForbiddenWithoutPermission() {
	cookie := suite.login()
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodGet, "/api/context/options", nil, &cookie).Code)

	rec := suite.do(http.MethodPost, "/api/orders/ord-1/actions/void", map[string]string{"reason": "ошибка"}, &cookie)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), "У вас нет прав для выполнения этого действия", decodeBody(suite.T(), rec)["message"])

	rec = suite.do(http.MethodPost, "/api/billing/payment_qr", map[string]string{"scope": "order", "scope_id": "ord-1"}, &cookie)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code, "выключенный фичефлаг не даёт доступа")
}

func (suite *RouterTestSuite) TestStaffCannotSwitch() {
	suite.Fake.roles = []string{dto.RoleStaff}
	cookie := suite.login()

	rec := suite.do(http.MethodPut, "/api/context/restaurant", dto.SelectRestaurantDTO{RestaurantID: "r2"}, &cookie)
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
}

func (suite *RouterTestSuite) TestLogoutClearsSession() {
	cookie := suite.login()
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodGet, "/api/context/options", nil, &cookie).Code)

	rec := suite.do(http.MethodPost, "/api/auth/logout", nil, &cookie)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.do(http.MethodGet, "/api/context", nil, &cookie)
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)

	suite.Fake.mu.Lock()
	assert.Equal(suite.T(), 1, suite.Fake.logoutCalls)
	suite.Fake.mu.Unlock()
}

func (suite *RouterTestSuite) TestPublicResolveUsesStableDeviceID() {
	var cookie *http.Cookie
	for i := 0; i < 2; i++ {
		rec := suite.do(http.MethodPost, "/api/public/qr/resolve", dto.ResolveQRDTO{Code: "abc"}, &cookie)
		require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())
	}

	suite.Fake.mu.Lock()
	defer suite.Fake.mu.Unlock()
	require.Len(suite.T(), suite.Fake.deviceSeen, 2)
	assert.NotEmpty(suite.T(), suite.Fake.deviceSeen[0])
	assert.Equal(suite.T(), suite.Fake.deviceSeen[0], suite.Fake.deviceSeen[1])
}

func (suite *RouterTestSuite) TestWebSocketRequiresTopic() {
	rec := suite.do(http.MethodGet, "/ws/public?qr_session=qr-1", nil, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestMetricsExposed() {
	suite.login()

	rec := suite.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "resto_backend_requests_total")
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
