package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	pingEvery       = idleTimeout * 9 / 10
	inboundMaxBytes = 512
	outboxSize      = 64
)

// Client - одно браузерное соединение, подписанное на одну тему.
type Client struct {
	Hub   *Hub
	Conn  *websocket.Conn
	Send  chan []byte
	Topic Topic
}

func NewClient(hub *Hub, conn *websocket.Conn, topic Topic) *Client {
	return &Client{Hub: hub, Conn: conn, Send: make(chan []byte, outboxSize), Topic: topic}
}

func (c *Client) extendDeadline(string) error {
	return c.Conn.SetReadDeadline(time.Now().Add(idleTimeout))
}

// ReadPump держит соединение живым по pong и ждёт закрытия. Входящие сообщения отбрасываются.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.leave(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(inboundMaxBytes)
	_ = c.extendDeadline("")
	c.Conn.SetPongHandler(c.extendDeadline)

	for {
		if _, _, err := c.Conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Hub.logger.Debug("WebSocket: соединение оборвано", zap.String("topic", c.Topic.Key()), zap.Error(err))
			}
			return
		}
	}
}

// WritePump - единственный писатель в соединение: обновления заказа и ping.
func (c *Client) WritePump() {
	pinger := time.NewTicker(pingEvery)
	defer func() {
		pinger.Stop()
		_ = c.Conn.Close()
	}()

	for {
		var (
			kind    int
			payload []byte
		)
		select {
		case msg, open := <-c.Send:
			if !open {
				_ = c.Conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
				return
			}
			kind, payload = websocket.TextMessage, msg
		case <-pinger.C:
			kind = websocket.PingMessage
		}

		_ = c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.Conn.WriteMessage(kind, payload); err != nil {
			c.Hub.logger.Debug("WebSocket: ошибка записи", zap.String("topic", c.Topic.Key()), zap.Error(err))
			return
		}
	}
}
