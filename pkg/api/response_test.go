package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	assert.Equal(t, 3, NewPagination(101, 1, 50).TotalPages)
	assert.Equal(t, 2, NewPagination(100, 2, 50).TotalPages)
	assert.Equal(t, 0, NewPagination(0, 1, 50).TotalPages)
	assert.Equal(t, 1, NewPagination(7, 1, 0).TotalPages)
}

func TestSuccessListNeverNull(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, SuccessList[string](c, "ok", nil, 0, 1, 20))

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	body := out["body"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, body["list"])
	assert.Equal(t, float64(20), body["pagination"].(map[string]interface{})["limit"])
}
