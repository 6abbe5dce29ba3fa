package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"resto-dashboard/internal/listeners"
	"resto-dashboard/internal/routes"
	"resto-dashboard/internal/storage"
	"resto-dashboard/pkg/config"
	"resto-dashboard/pkg/eventbus"
	apperrors "resto-dashboard/pkg/errors"
	applogger "resto-dashboard/pkg/logger"
	"resto-dashboard/pkg/metrics"
	appmiddleware "resto-dashboard/pkg/middleware"
	"resto-dashboard/pkg/utils"
	"resto-dashboard/pkg/validation"
	"resto-dashboard/pkg/websocket"
)

func main() {
	// 1. Конфиг и логгеры
	cfg := config.New()
	logger := applogger.NewLogger()
	defer func() { _ = logger.Sync() }()
	loggers := applogger.NewLoggers(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	// 2. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, apperrors.MsgInternal, err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))

	// 3. Валидатор
	v, err := validation.New()
	if err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = v

	// 4. Хранилище сессий
	kv, err := storage.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Не удалось открыть хранилище сессий", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}
	defer func() { _ = kv.Close() }()

	// 5. Шина событий, метрики, WebSocket
	bus := eventbus.New(logger.Named("eventbus"))
	m := metrics.New()
	hub := websocket.NewHub(loggers.Public)

	listeners.NewContextListener(m, loggers.Context).Register(bus)

	// 6. Маршруты
	watcher := routes.InitRouter(e, routes.Dependencies{
		Config:  cfg,
		Storage: kv,
		Bus:     bus,
		Hub:     hub,
		Metrics: m,
		Loggers: loggers,
	})

	go hub.Run(ctx)
	go watcher.Run(ctx)

	// 7. Сервер
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Backend.BaseURL))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	bus.Wait()
}
