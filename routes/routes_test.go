package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solune-backend/config"
	"solune-backend/controllers"
	"solune-backend/feed"
	"solune-backend/metrics"
	"solune-backend/services"
	"solune-backend/store"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	cfg.JWTSecret = "test-secret"
	cfg.CORSOrigins = "http://localhost:3000"

	s := store.NewMemory()
	m := metrics.New()
	promos := services.NewPromotionService(nil, s.PromotionLogs, 0, nil, m.PromotionSent)
	return SetupRouter(controllers.New(s, feed.NewHub(s, nil), cfg, m, promos, nil))
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := testRouter(t)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIRequiresToken(t *testing.T) {
	r := testRouter(t)
	for _, path := range []string{
		"/api/appointments",
		"/api/analytics/summary",
		"/api/inventory/stock",
		"/api/promotions/templates",
		"/auth/me",
	} {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(t)
	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `solune_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestCORS(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
