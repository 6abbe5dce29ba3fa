package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resto-dashboard/internal/dto"
	apperrors "resto-dashboard/pkg/errors"
	"resto-dashboard/pkg/metrics"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second, zap.NewNop(), metrics.New())
}

func TestOrders_SignsWithTokenAndOutlet(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_ = json.NewEncoder(w).Encode(dto.ListDTO[dto.OrderDTO]{Items: []dto.OrderDTO{{ID: "ord-1"}}, Total: 1})
	})

	list, err := NewOrderAPI(c).List(context.Background(), Auth{Token: "acc", OutletID: "o2"}, dto.OrderFilterDTO{Status: "open", Page: 2, Limit: 50})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	require.NotNil(t, got)
	assert.Equal(t, "/orders", got.URL.Path)
	assert.Equal(t, "Bearer acc", got.Header.Get("Authorization"))
	assert.Equal(t, "o2", got.Header.Get(HeaderOutletID))
	assert.Empty(t, got.Header.Get(HeaderDeviceID))
	assert.Equal(t, "open", got.URL.Query().Get("status"))
	assert.Equal(t, "2", got.URL.Query().Get("page"))
	assert.Equal(t, "50", got.URL.Query().Get("limit"))
}

func TestPublic_NoBearerButDevice(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_ = json.NewEncoder(w).Encode(dto.QRSessionDTO{SessionID: "qr-1"})
	})

	qr, err := NewPublicAPI(c).ResolveQR(context.Background(), "dev-1", dto.ResolveQRDTO{Code: "abc", Static: true})
	require.NoError(t, err)
	assert.Equal(t, "qr-1", qr.SessionID)
	assert.Equal(t, "/public/qr/static", got.URL.Path)
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Equal(t, "dev-1", got.Header.Get(HeaderDeviceID))
}

func TestPathEscapesIDs(t *testing.T) {
	var rawPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, NewRestaurantAPI(c).DeleteRestaurant(context.Background(), "acc", "a/b"))
	assert.Equal(t, "/restaurants/a%2Fb", rawPath)
}

func TestErrorExtraction(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Стол занят","detail":"ignored"}`, "Стол занят"},
		{"detail fallback", http.StatusConflict, `{"detail":"Смена уже закрыта"}`, "Смена уже закрыта"},
		{"status text fallback", http.StatusNotFound, `not json`, "Not Found"},
		{"unknown status", 599, ``, apperrors.MsgRequestFailed},
		{"forbidden is fixed", http.StatusForbidden, `{"message":"role staff lacks payroll:manage"}`, apperrors.MsgPermissionDenied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := NewAuthAPI(c).Me(context.Background(), "acc")
			var be *apperrors.BackendError
			require.True(t, errors.As(err, &be), "ожидалась BackendError, получено %v", err)
			assert.Equal(t, tc.status, be.Status)
			assert.Equal(t, tc.message, be.Message)
		})
	}
}

func TestTransportErrorIsBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second, zap.NewNop(), nil)
	_, err := NewAuthAPI(c).Me(context.Background(), "acc")

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	assert.Equal(t, apperrors.MsgRequestFailed, httpErr.Message)
}

func TestMalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})

	_, err := NewAuthAPI(c).Me(context.Background(), "acc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/auth/me")
}

func TestEmptySuccessBodyForObjectIsBadGateway(t *testing.T) {
	bodies := map[string]func(w http.ResponseWriter){
		"null":       func(w http.ResponseWriter) { _, _ = w.Write([]byte("null")) },
		"empty":      func(w http.ResponseWriter) { w.WriteHeader(http.StatusOK) },
		"no content": func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
	}
	for name, write := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { write(w) })

			list, err := NewOrderAPI(c).List(context.Background(), Auth{Token: "acc", OutletID: "o1"}, dto.OrderFilterDTO{})
			assert.Nil(t, list)
			var httpErr *apperrors.HttpError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadGateway, httpErr.Code)
			assert.Equal(t, apperrors.MsgRequestFailed, httpErr.Message)
		})
	}
}

func TestEmptySuccessBodyForListIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	})

	restaurants, err := NewRestaurantAPI(c).ListRestaurants(context.Background(), "acc")
	require.NoError(t, err)
	assert.Empty(t, restaurants)
}
