package controllers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"solune-backend/analytics"
	"solune-backend/models"
)

func (ctl *Controller) prepareExpense(c *gin.Context, e, old *models.Expense) error {
	e.Item = strings.TrimSpace(e.Item)
	if e.Item == "" {
		return errors.New("item is required")
	}
	if e.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if !analytics.ValidDate(e.Date) {
		return errors.New("date must be yyyy-MM-dd")
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = ctl.now()
	}
	return nil
}

func (ctl *Controller) Expenses() *Resource[models.Expense, *models.Expense] {
	res := newResource[models.Expense](ctl, "Expense", ctl.Store.Expenses, ctl.prepareExpense)
	res.filter = dateFiltered[models.Expense](ctl)
	return res
}
