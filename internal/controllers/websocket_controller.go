package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"resto-dashboard/internal/services"
	apperrors "resto-dashboard/pkg/errors"
	"resto-dashboard/pkg/utils"
	appwebsocket "resto-dashboard/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketController подписывает гостя на обновления его заказа.
type WebSocketController struct {
	hub           *appwebsocket.Hub
	publicService services.PublicServiceInterface
	logger        *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, publicService services.PublicServiceInterface, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, publicService: publicService, logger: logger}
}

// ServeWs: /ws/public?qr_session=...&order=...
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	qrSessionID := ctx.QueryParam("qr_session")
	orderID := ctx.QueryParam("order")
	if qrSessionID == "" || orderID == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Не указаны qr_session и order", nil, nil), c.logger)
	}

	store, err := sessionOf(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	deviceID, err := c.publicService.DeviceID(ctx.Request().Context(), store)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return err
	}

	topic := appwebsocket.Topic{QRSessionID: qrSessionID, OrderID: orderID, DeviceID: deviceID}
	client := appwebsocket.NewClient(c.hub, conn, topic)
	if !c.hub.Register(client) {
		c.logger.Warn("WebSocket: сервер останавливается, подписка отклонена", zap.String("topic", topic.Key()))
		_ = conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: гость подписан на заказ", zap.String("topic", topic.Key()))
	return nil
}
