package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"solune-backend/analytics"
	"solune-backend/config"
	"solune-backend/feed"
	"solune-backend/metrics"
	"solune-backend/services"
	"solune-backend/store"
	"solune-backend/utils"
)

// Controller carries the dependencies shared by every handler.
type Controller struct {
	Store      *store.Store
	Hub        *feed.Hub
	Config     *config.Config
	Metrics    *metrics.Metrics
	Promotions *services.PromotionService
	Logger     *zap.Logger
}

func New(s *store.Store, hub *feed.Hub, cfg *config.Config, m *metrics.Metrics, promos *services.PromotionService, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{Store: s, Hub: hub, Config: cfg, Metrics: m, Promotions: promos, Logger: logger}
}

func (ctl *Controller) now() time.Time {
	return ctl.Config.Now()
}

func (ctl *Controller) today() string {
	return utils.DateString(ctl.now())
}

// engine builds the aggregation engine for a snapshot's service groups.
func (ctl *Controller) engine(snap *feed.Snapshot) *analytics.Engine {
	return analytics.NewEngine(analytics.NewCalculator(snap.ServiceGroups, ctl.Config.NonDiscountableGroups()...))
}

// snapshot returns the current snapshot, loading one on first use.
func (ctl *Controller) snapshot(ctx context.Context) (*feed.Snapshot, error) {
	snap := ctl.Hub.Current()
	if snap.Version > 0 {
		return snap, nil
	}
	return ctl.Refresh(ctx)
}

// Refresh reloads the snapshot and mirrors the headline figures into the
// business gauges.
func (ctl *Controller) Refresh(ctx context.Context) (*feed.Snapshot, error) {
	snap, err := ctl.Hub.Refresh(ctx)
	if err != nil {
		if ctl.Metrics != nil {
			ctl.Metrics.SnapshotRefreshErrs.Inc()
		}
		return nil, err
	}
	if ctl.Metrics != nil {
		dash := ctl.engine(snap).Dashboard(snap.Appointments, ctl.now())
		inv := analytics.SummarizeInventory(
			analytics.StockLevels(snap.Products, snap.StockTransactions, ctl.Config.LowStock, ctl.today()),
			len(snap.StockTransactions),
		)
		ctl.Metrics.Observe(metrics.Business{
			Version:           snap.Version,
			RevenueToday:      dash.TodayRevenue,
			AppointmentsToday: dash.TodayAppointments,
			OutOfStock:        inv.OutOfStock,
			LowStock:          inv.LowStock,
		})
	}
	return snap, nil
}

// changed publishes a fresh snapshot after a write. The write already
// succeeded, so a failed reload is only logged; the periodic refresh catches
// up.
func (ctl *Controller) changed(c *gin.Context) {
	if _, err := ctl.Refresh(c.Request.Context()); err != nil {
		ctl.Logger.Error("snapshot refresh after write failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
}

// DailyReport logs the day's closing figures.
func (ctl *Controller) DailyReport(ctx context.Context) error {
	snap, err := ctl.Refresh(ctx)
	if err != nil {
		return err
	}
	s := ctl.engine(snap).Summarize(snap.Appointments, snap.Expenses, analytics.Selection{Preset: analytics.PresetToday}, ctl.now())
	ctl.Logger.Info("daily summary",
		zap.String("date", ctl.today()),
		zap.Int("appointments", s.Totals.Appointments),
		zap.String("revenue", utils.FormatINR(s.Totals.Revenue)),
		zap.String("expenses", utils.FormatINR(s.Expenses.Total)),
		zap.String("net", utils.FormatINR(s.Net)),
		zap.String("month_to_date", utils.FormatINR(s.MonthlyCollection)),
	)
	return nil
}

// fail maps a store error onto a response.
func (ctl *Controller) fail(c *gin.Context, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, what+" not found")
		return
	}
	ctl.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.String("resource", what), zap.Error(err))
	utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
