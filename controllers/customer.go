package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solune-backend/analytics"
)

// GetClients rolls the appointment history up per phone number.
// Query: range/from/to narrow the history, sort is all, high-visits or
// high-spend, q searches name and phone.
func (ctl *Controller) GetClients(c *gin.Context) {
	snap, sel, ok := ctl.analyticsInput(c)
	if !ok {
		return
	}
	apts := analytics.FilterByDate(snap.Appointments, sel, ctl.now())
	clients := ctl.engine(snap).Clients(apts)
	analytics.SortClients(clients, c.DefaultQuery("sort", analytics.SortRecent))
	clients = analytics.SearchClients(clients, c.Query("q"))
	if clients == nil {
		clients = []analytics.Client{}
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients, "total": len(clients)})
}
