// Package backend - типизированные обёртки над удалённым REST API ресторана.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "resto-dashboard/pkg/errors"
	"resto-dashboard/pkg/metrics"
)

const (
	HeaderOutletID = "X-Outlet-Id"
	HeaderDeviceID = "X-Device-Id"

	maxErrorBody = 64 << 10
)

// Client - общий транспорт для всех областей API.
// Клиент ничего не знает об активном контексте: токен и точку передаёт вызывающий.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("backend_client"),
		metrics:    m,
	}
}

// Auth - то, чем подписывается запрос.
type Auth struct {
	Token    string
	OutletID string
	DeviceID string
}

type request struct {
	area     string
	method   string
	endpoint string
	auth     Auth
	query    url.Values
	body     interface{}
}

// call - выполнить запрос и распарсить JSON-ответ в T.
func call[T any](c *Client, ctx context.Context, r request) (T, error) {
	var out T
	raw, err := c.do(ctx, r)
	if err != nil {
		return out, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			c.logger.Error("Ошибка парсинга ответа",
				zap.String("area", r.area),
				zap.String("endpoint", r.endpoint),
				zap.Error(err),
			)
			return out, fmt.Errorf("ошибка парсинга JSON для эндпоинта %s: %w", r.endpoint, err)
		}
	}
	// Пустое тело или null там, где ждём объект, - ошибка API, а не пустой результат.
	if v := reflect.ValueOf(&out).Elem(); v.Kind() == reflect.Pointer && v.IsNil() {
		c.logger.Error("Удалённый API вернул пустой ответ",
			zap.String("area", r.area),
			zap.String("endpoint", r.endpoint),
		)
		return out, apperrors.NewHttpError(http.StatusBadGateway, apperrors.MsgRequestFailed,
			fmt.Errorf("пустой ответ эндпоинта %s", r.endpoint), nil)
	}
	return out, nil
}

// exec - запрос, тело ответа которого не нужно.
func exec(c *Client, ctx context.Context, r request) error {
	_, err := c.do(ctx, r)
	return err
}

func (c *Client) do(ctx context.Context, r request) (json.RawMessage, error) {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации тела запроса: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + r.endpoint
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.auth.Token)
	}
	if r.auth.OutletID != "" {
		req.Header.Set(HeaderOutletID, r.auth.OutletID)
	}
	if r.auth.DeviceID != "" {
		req.Header.Set(HeaderDeviceID, r.auth.DeviceID)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(r.area, r.method, 0, time.Since(started))
		c.logger.Warn("Удалённый API недоступен",
			zap.String("method", r.method),
			zap.String("endpoint", r.endpoint),
			zap.Error(err),
		)
		return nil, apperrors.NewHttpError(http.StatusBadGateway, apperrors.MsgRequestFailed, err, nil)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(r.area, r.method, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		backendErr := extractError(resp)
		c.logger.Debug("Удалённый API вернул ошибку",
			zap.String("method", r.method),
			zap.String("endpoint", r.endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", backendErr.Message),
		)
		return nil, backendErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return io.ReadAll(resp.Body)
}

// extractError достаёт человекочитаемое сообщение из тела ответа.
// Порядок: поле message, поле detail, текст HTTP-статуса, общий текст.
func extractError(resp *http.Response) *apperrors.BackendError {
	if resp.StatusCode == http.StatusForbidden {
		return &apperrors.BackendError{Status: resp.StatusCode, Message: apperrors.MsgPermissionDenied}
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	msg := ""
	if len(raw) > 0 && json.Unmarshal(raw, &payload) == nil {
		msg = strings.TrimSpace(payload.Message)
		if msg == "" {
			msg = strings.TrimSpace(payload.Detail)
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if msg == "" {
		msg = apperrors.MsgRequestFailed
	}
	return &apperrors.BackendError{Status: resp.StatusCode, Message: msg}
}

func path(format string, ids ...string) string {
	escaped := make([]interface{}, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, escaped...)
}
