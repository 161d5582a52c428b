package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solune-backend/models"
	"solune-backend/services"
)

func TestPromotionsDisabledWithoutSender(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodGet, "/api/promotions/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Templates []models.PromotionTemplate `json:"templates"`
		Enabled   bool                       `json:"enabled"`
	}](t, w)
	assert.False(t, body.Enabled)
	assert.Len(t, body.Templates, len(services.Templates))

	w = h.do(http.MethodPost, "/api/promotions/send", gin.H{"phones": []string{"9876543210"}, "template": "welcome"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSendPromotion(t *testing.T) {
	sender := &fakeSender{}
	h := newHarness(t, sender)
	seedClients(h)

	w := h.do(http.MethodPost, "/api/promotions/send", gin.H{"phones": []string{}, "template": "welcome"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPost, "/api/promotions/send", gin.H{"phones": []string{"9876543210"}, "template": "flash-sale"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPost, "/api/promotions/send", gin.H{"phones": []string{"9876543210"}, "template": "custom", "message": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPost, "/api/promotions/send", gin.H{"phones": []string{"9876543210", "9000000000"}, "template": "welcome"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []interface{}{"9000000000"}, decode[gin.H](t, w)["phones"])
	assert.Empty(t, sender.calls)

	w = h.do(http.MethodPost, "/api/promotions/send", gin.H{
		"phones":   []string{"9876543210", "9123456780", "9876543210"},
		"template": "custom",
		"message":  "Hi [CustomerName], 10% off this week",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[struct {
		Success bool                 `json:"success"`
		Summary services.BulkSummary `json:"summary"`
	}](t, w)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Summary.Total)
	assert.Equal(t, 2, res.Summary.Succeeded)
	assert.Equal(t, []string{
		"+919876543210: Hi Priya Sharma, 10% off this week",
		"+919123456780: Hi Kiran, 10% off this week",
	}, sender.calls)

	w = h.do(http.MethodGet, "/api/promotions/log", nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[struct {
		Logs []models.PromotionLog `json:"logs"`
	}](t, w).Logs
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, "sent", l.Status)
		assert.Equal(t, "custom", l.Template)
	}
}
