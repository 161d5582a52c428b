// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solune-backend/analytics"
	"solune-backend/services"
	"solune-backend/utils"
)

type SendPromotionInput struct {
	Phones   []string `json:"phones"`
	Template string   `json:"template" binding:"required"`
	Message  string   `json:"message"`
}

func (ctl *Controller) GetPromotionTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"templates":   services.Templates,
		"placeholder": services.NamePlaceholder,
		"enabled":     ctl.Promotions.Enabled(),
	})
}

// SendPromotion messages the selected clients. Every phone must belong to a
// known client; names come from the client rollup.
func (ctl *Controller) SendPromotion(c *gin.Context) {
	if !ctl.Promotions.Enabled() {
		utils.RespondWithError(c, http.StatusInternalServerError, "Messaging credentials not configured. Set TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN.")
		return
	}

	var input SendPromotionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if len(input.Phones) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid recipients data")
		return
	}
	message, err := services.ResolveMessage(input.Template, input.Message)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := ctl.snapshot(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "snapshot")
		return
	}
	byPhone := make(map[string]analytics.Client)
	for _, cl := range ctl.engine(snap).Clients(snap.Appointments) {
		byPhone[cl.Phone] = cl
	}

	recipients := make([]services.Recipient, 0, len(input.Phones))
	var unknown []string
	seen := make(map[string]bool)
	for _, phone := range input.Phones {
		phone = strings.TrimSpace(phone)
		if seen[phone] {
			continue
		}
		seen[phone] = true
		cl, ok := byPhone[phone]
		if !ok {
			unknown = append(unknown, phone)
			continue
		}
		recipients = append(recipients, services.Recipient{Phone: cl.Phone, Name: cl.Name, Message: message})
	}
	if len(unknown) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unknown clients", "phones": unknown})
		return
	}

	result, err := ctl.Promotions.SendBulk(c.Request.Context(), input.Template, recipients)
	if err != nil && !errors.Is(err, c.Request.Context().Err()) {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctl.Logger.Info("promotion sent",
		zap.String("template", input.Template),
		zap.Int("total", result.Summary.Total),
		zap.Int("succeeded", result.Summary.Succeeded),
		zap.Int("failed", result.Summary.Failed),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": err == nil,
		"results": result.Results,
		"summary": result.Summary,
	})
}

// GetPromotionLog lists past deliveries, newest first.
func (ctl *Controller) GetPromotionLog(c *gin.Context) {
	logs, err := ctl.Store.PromotionLogs.List(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "Promotion log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
