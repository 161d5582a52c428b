package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"solune-backend/config"
	"solune-backend/controllers"
	"solune-backend/feed"
	"solune-backend/metrics"
	"solune-backend/routes"
	"solune-backend/services"
	"solune-backend/store"
	"solune-backend/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fakeSender struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeSender) Send(ctx context.Context, to, body string) (services.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, to+": "+body)
	return services.Delivery{MessageID: "SM" + to, Channel: services.ChannelWhatsApp}, nil
}

type harness struct {
	t      *testing.T
	ctl    *controllers.Controller
	router *gin.Engine
	store  *store.Store
	sender *fakeSender
	token  string
}

// newHarness wires the full router over the in-memory store. A nil sender
// leaves promotions disabled.
func newHarness(t *testing.T, sender *fakeSender) *harness {
	t.Helper()
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	cfg.JWTSecret = "test-secret"
	cfg.Env = "test"
	cfg.MessageDelay = 0

	s := store.NewMemory()
	m := metrics.New()
	var snd services.Sender
	if sender != nil {
		snd = sender
	}
	promos := services.NewPromotionService(snd, s.PromotionLogs, 0, nil, m.PromotionSent)
	ctl := controllers.New(s, feed.NewHub(s, nil), cfg, m, promos, nil)

	h := &harness{t: t, ctl: ctl, router: routes.SetupRouter(ctl), store: s, sender: sender}
	w := h.do(http.MethodPost, "/auth/register", gin.H{
		"email": "owner@salon.test", "name": "Owner", "password": "hunter22hunter",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	h.token = decode[struct {
		Token string `json:"token"`
	}](t, w).Token
	return h
}

func (h *harness) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// do sends an authenticated request once a token is held.
func (h *harness) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	return h.request(method, path, body, h.token)
}

// create posts body and decodes the created record's id.
func (h *harness) create(path string, body interface{}) string {
	h.t.Helper()
	w := h.do(http.MethodPost, path, body)
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID string `json:"id"`
	}](h.t, w).ID
}

func (h *harness) today() string {
	return utils.DateString(h.ctl.Config.Now())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
