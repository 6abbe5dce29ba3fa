package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/controllers"
	"resto-dashboard/internal/events"
	"resto-dashboard/internal/services"
	"resto-dashboard/internal/session"
	"resto-dashboard/internal/storage"
	"resto-dashboard/pkg/config"
	"resto-dashboard/pkg/eventbus"
	applogger "resto-dashboard/pkg/logger"
	"resto-dashboard/pkg/metrics"
	"resto-dashboard/pkg/middleware"
	"resto-dashboard/pkg/service"
	"resto-dashboard/pkg/websocket"
)

const orderWatcherListener = "public-order-watcher"

// Dependencies - то, что main создаёт до построения маршрутов.
type Dependencies struct {
	Config  *config.Config
	Storage storage.KeyValueStore
	Bus     *eventbus.Bus
	Hub     *websocket.Hub
	Metrics *metrics.Metrics
	Loggers *applogger.Loggers
}

// InitRouter собирает клиентов API, сервисы, контроллеры и маршруты.
// Возвращает наблюдатель публичных заказов, его запускает main.
func InitRouter(e *echo.Echo, deps Dependencies) *services.OrderWatcher {
	loggers := deps.Loggers
	cfg := deps.Config
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	jwtSvc := service.NewJWTService(cfg.Session.SecretKey, cfg.Session.TTL, loggers.Auth)
	manager := session.NewManager(deps.Storage, deps.Bus, loggers.Context)
	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, loggers.Backend, deps.Metrics)

	// --- 1. КЛИЕНТЫ API ---
	authAPI := backend.NewAuthAPI(client)
	restaurantAPI := backend.NewRestaurantAPI(client)
	orderAPI := backend.NewOrderAPI(client)
	billingAPI := backend.NewBillingAPI(client)
	staffAPI := backend.NewStaffAPI(client)
	publicAPI := backend.NewPublicAPI(client)

	// --- 2. СЕРВИСЫ ---
	permissionService := services.NewPermissionService(authAPI, loggers.Auth)
	authService := services.NewAuthService(authAPI, permissionService, loggers.Auth)
	contextService := services.NewContextService(restaurantAPI, permissionService, loggers.Context)
	restaurantService := services.NewRestaurantService(restaurantAPI, loggers.Main)
	orderService := services.NewOrderService(orderAPI, loggers.Main)
	billingService := services.NewBillingService(billingAPI, loggers.Main)
	staffService := services.NewStaffService(staffAPI, loggers.Main)
	payrollService := services.NewPayrollService(staffAPI, loggers.Main)
	publicService := services.NewPublicService(publicAPI, deps.Bus, loggers.Public)

	watcher := services.NewOrderWatcher(publicAPI, deps.Hub, cfg.Public.OrderPollInterval, deps.Metrics, loggers.Public)
	deps.Bus.Subscribe(events.OrderUpdated, orderWatcherListener, watcher.OnOrderUpdated)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, loggers.Auth)
	contextCtrl := controllers.NewContextController(contextService, loggers.Context)
	restaurantCtrl := controllers.NewRestaurantController(restaurantService, loggers.Main)
	orderCtrl := controllers.NewOrderController(orderService, loggers.Main)
	billingCtrl := controllers.NewBillingController(billingService, loggers.Main)
	staffCtrl := controllers.NewStaffController(staffService, loggers.Main)
	payrollCtrl := controllers.NewPayrollController(payrollService, loggers.Main)
	publicCtrl := controllers.NewPublicController(publicService, loggers.Public)
	wsCtrl := controllers.NewWebSocketController(deps.Hub, publicService, loggers.Public)

	// --- 4. РОУТЕРЫ ---
	authMW := middleware.NewAuthMiddleware(jwtSvc, manager, permissionService,
		middleware.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}, loggers.Auth)

	e.GET("/metrics", deps.Metrics.Handler())

	api := e.Group("/api", authMW.Session)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authCtrl, authMW)
	runContextRouter(secureGroup, contextCtrl)
	runRestaurantRouter(secureGroup, restaurantCtrl, authMW)
	runOrderRouter(secureGroup, orderCtrl, authMW)
	runBillingRouter(secureGroup, billingCtrl, authMW)
	runStaffRouter(secureGroup, staffCtrl, authMW)
	runPayrollRouter(secureGroup, payrollCtrl, authMW)
	runPublicRouter(api, e.Group("/ws", authMW.Session), publicCtrl, wsCtrl)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено", zap.String("storage", cfg.Storage.Driver))
	return watcher
}
