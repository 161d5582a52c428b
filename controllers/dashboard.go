package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solune-backend/analytics"
	"solune-backend/utils"
)

type DashboardOverview struct {
	analytics.Dashboard
	TodayRevenueFormatted string                     `json:"todayRevenueFormatted"`
	Inventory             analytics.InventorySummary `json:"inventory"`
	RecentAppointments    int                        `json:"recentAppointments"`
	Version               uint64                     `json:"version"`
}

// GetDashboardOverview is the landing page: today's figures, month over
// month growth and inventory alerts.
func (ctl *Controller) GetDashboardOverview(c *gin.Context) {
	snap, err := ctl.snapshot(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "snapshot")
		return
	}
	now := ctl.now()
	d := ctl.engine(snap).Dashboard(snap.Appointments, now)
	levels := analytics.StockLevels(snap.Products, snap.StockTransactions, ctl.Config.LowStock, ctl.today())

	c.JSON(http.StatusOK, DashboardOverview{
		Dashboard:             d,
		TodayRevenueFormatted: utils.FormatINR(d.TodayRevenue),
		Inventory:             analytics.SummarizeInventory(levels, len(snap.StockTransactions)),
		RecentAppointments:    len(analytics.FilterByDate(snap.Appointments, analytics.Selection{Preset: analytics.Preset7Days}, now)),
		Version:               snap.Version,
	})
}
