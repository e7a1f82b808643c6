package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-hotel/config"
	"smart-hotel/controllers"
)

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := SetupRouter(
		controllers.NewGuestController(nil, nil),
		controllers.NewBookingController(nil, nil),
		controllers.NewRoomController(nil, nil),
		controllers.NewSmartLockController(nil, nil),
		nil,
		cfg,
	)
	require.NoError(t, err)
	return r
}

func TestSetupRouter_Health(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetupRouter_SystemStatus(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "running", body.Data["status"])
}

func TestSetupRouter_BindingTagsRegistered(t *testing.T) {
	r := newTestRouter(t, config.Config{})

	// rejected by the lockcode tag before any controller dependency is touched
	req := httptest.NewRequest(http.MethodPost, "/api/guests/register", strings.NewReader(`{
		"name":"Zhang Wei","idCard":"11010119900307123X","phone":"13800138000","gender":"Male",
		"roomId":1,"checkInDate":"2024-01-01","checkOutDate":"2024-01-03","lockCode":"12"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "smart lock code must be exactly 6 digits")
}

func TestSetupRouter_CORS(t *testing.T) {
	r := newTestRouter(t, config.Config{CORSOrigins: "http://kiosk.local"})

	req := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
	req.Header.Set("Origin", "http://kiosk.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://kiosk.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
