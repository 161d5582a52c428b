package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solune-backend/analytics"
)

type clientsBody struct {
	Clients []analytics.Client `json:"clients"`
	Total   int                `json:"total"`
}

func seedClients(h *harness) {
	for _, a := range []gin.H{
		{"name": "Priya", "phone": "9876543210", "date": "2026-03-01", "amount": 200},
		{"name": "Priya Sharma", "phone": "9876543210", "date": "2026-03-05", "amount": 300},
		{"name": "Kiran", "phone": "9123456780", "date": "2026-03-10", "amount": 900},
	} {
		h.create("/api/appointments", a)
	}
}

func TestGetClients(t *testing.T) {
	h := newHarness(t, nil)
	seedClients(h)

	w := h.do(http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[clientsBody](t, w)
	require.Equal(t, 2, body.Total)
	assert.Equal(t, "Kiran", body.Clients[0].Name)
	// newest record first, so its name wins
	assert.Equal(t, "Priya Sharma", body.Clients[1].Name)
	assert.Equal(t, "2026-03-05", body.Clients[1].LastVisit)
	assert.Equal(t, 2, body.Clients[1].Visits)
	assert.InDelta(t, 500, body.Clients[1].TotalSpent, 1e-9)

	w = h.do(http.MethodGet, "/api/clients?sort=high-visits", nil)
	assert.Equal(t, "9876543210", decode[clientsBody](t, w).Clients[0].Phone)

	w = h.do(http.MethodGet, "/api/clients?sort=high-spend", nil)
	assert.Equal(t, "Kiran", decode[clientsBody](t, w).Clients[0].Name)

	w = h.do(http.MethodGet, "/api/clients?q=priya", nil)
	body = decode[clientsBody](t, w)
	require.Equal(t, 1, body.Total)

	w = h.do(http.MethodGet, "/api/clients?q=nobody", nil)
	body = decode[clientsBody](t, w)
	assert.Equal(t, 0, body.Total)
	assert.NotNil(t, body.Clients)

	w = h.do(http.MethodGet, "/api/clients?from=2026-03-04&to=2026-03-06", nil)
	body = decode[clientsBody](t, w)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, 1, body.Clients[0].Visits)
}
