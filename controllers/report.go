// controllers/report.go
package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solune-backend/analytics"
	"solune-backend/feed"
	"solune-backend/utils"
)

// selection reads ?range=&from=&to=. Malformed or inverted dates are a 400.
func (ctl *Controller) selection(c *gin.Context) (analytics.Selection, bool) {
	sel := analytics.Selection{
		Preset: analytics.Preset(c.DefaultQuery("range", string(analytics.PresetAll))),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if sel.To != "" && sel.From == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "to requires from")
		return sel, false
	}
	for _, d := range []string{sel.From, sel.To} {
		if d != "" && !analytics.ValidDate(d) {
			utils.RespondWithError(c, http.StatusBadRequest, "dates must be yyyy-MM-dd")
			return sel, false
		}
	}
	if sel.Custom() {
		if sel.To != "" {
			from, _ := utils.ParseDate(sel.From, ctl.Config.Location())
			to, _ := utils.ParseDate(sel.To, ctl.Config.Location())
			if utils.DaysBetween(from, to) < 0 {
				utils.RespondWithError(c, http.StatusBadRequest, "from must not be after to")
				return sel, false
			}
		}
		sel.Preset = analytics.PresetCustom
	}
	return sel, true
}

// SummaryView is a summary plus display strings for the headline amounts.
type SummaryView struct {
	analytics.Summary
	Version   uint64            `json:"version"`
	Formatted map[string]string `json:"formatted"`
}

func (ctl *Controller) summarize(snap *feed.Snapshot, sel analytics.Selection) SummaryView {
	s := ctl.engine(snap).Summarize(snap.Appointments, snap.Expenses, sel, ctl.now())
	return SummaryView{
		Summary: s,
		Version: snap.Version,
		Formatted: map[string]string{
			"revenue":           utils.FormatINR(s.Totals.Revenue),
			"gross":             utils.FormatINR(s.Totals.Gross),
			"discount":          utils.FormatINR(s.Totals.Discount),
			"averageTicket":     utils.FormatINR(s.Totals.AverageTicket),
			"monthlyCollection": utils.FormatINR(s.MonthlyCollection),
			"expenses":          utils.FormatINR(s.Expenses.Total),
			"net":               utils.FormatINR(s.Net),
		},
	}
}

// analyticsInput resolves the snapshot and the selection shared by every
// analytics endpoint.
func (ctl *Controller) analyticsInput(c *gin.Context) (*feed.Snapshot, analytics.Selection, bool) {
	sel, ok := ctl.selection(c)
	if !ok {
		return nil, sel, false
	}
	snap, err := ctl.snapshot(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "snapshot")
		return nil, sel, false
	}
	return snap, sel, true
}

func (ctl *Controller) GetSummary(c *gin.Context) {
	snap, sel, ok := ctl.analyticsInput(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctl.summarize(snap, sel))
}

func (ctl *Controller) GetServiceDistribution(c *gin.Context) {
	snap, sel, ok := ctl.analyticsInput(c)
	if !ok {
		return
	}
	apts := analytics.FilterByDate(snap.Appointments, sel, ctl.now())
	dist := ctl.engine(snap).ServiceDistribution(apts)
	if dist == nil {
		dist = []analytics.ServiceCount{}
	}
	c.JSON(http.StatusOK, gin.H{"services": dist})
}

func (ctl *Controller) GetStylistStats(c *gin.Context) {
	snap, sel, ok := ctl.analyticsInput(c)
	if !ok {
		return
	}
	apts := analytics.FilterByDate(snap.Appointments, sel, ctl.now())
	c.JSON(http.StatusOK, gin.H{"stylists": ctl.engine(snap).Stylists(apts)})
}

// GetPaymentSplit returns all four buckets; ?nonzero=true drops the empty
// ones as the charts do.
func (ctl *Controller) GetPaymentSplit(c *gin.Context) {
	snap, sel, ok := ctl.analyticsInput(c)
	if !ok {
		return
	}
	e := ctl.engine(snap)
	apts := analytics.FilterByDate(snap.Appointments, sel, ctl.now())
	if c.Query("nonzero") == "true" {
		c.JSON(http.StatusOK, gin.H{"payments": e.PaymentDistribution(apts)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": e.Payments(apts)})
}

// StreamSummary pushes the summary as a server-sent event on connect and
// again on every new snapshot.
func (ctl *Controller) StreamSummary(c *gin.Context) {
	sel, ok := ctl.selection(c)
	if !ok {
		return
	}
	snap, err := ctl.snapshot(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "snapshot")
		return
	}

	updates, cancel := ctl.Hub.Subscribe(1)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("summary", ctl.summarize(snap, sel))
	c.Writer.Flush()

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case next, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("summary", ctl.summarize(next, sel))
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{"at": ctl.now().Format(time.RFC3339)})
			return true
		}
	})
}
