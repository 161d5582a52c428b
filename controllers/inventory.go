// controllers/inventory.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"solune-backend/analytics"
	"solune-backend/models"
	"solune-backend/store"
)

func (ctl *Controller) prepareProduct(c *gin.Context, p, old *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.ExpiryDate != "" && !analytics.ValidDate(p.ExpiryDate) {
		return errors.New("expiryDate must be yyyy-MM-dd")
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = ctl.now()
	}
	return nil
}

func (ctl *Controller) prepareStockTransaction(c *gin.Context, t, old *models.StockTransaction) error {
	id, err := uuid.Parse(t.ProductID)
	if err != nil {
		return errors.New("productId is required")
	}
	product, err := ctl.Store.Products.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("product %s does not exist", t.ProductID)
	}
	if err != nil {
		return err
	}
	t.ProductName = product.Name

	switch t.Type {
	case models.StockTypeRevaluation:
		if t.Quantity < 0 {
			return errors.New("revaluation quantity must not be negative")
		}
	case models.StockTypeTransaction:
		if t.Price < 0 {
			return errors.New("price must not be negative")
		}
	default:
		return fmt.Errorf("type must be %q or %q", models.StockTypeRevaluation, models.StockTypeTransaction)
	}
	if !analytics.ValidDate(t.Date) {
		return errors.New("date must be yyyy-MM-dd")
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = ctl.now()
	}
	return nil
}

func (ctl *Controller) Products() *Resource[models.Product, *models.Product] {
	return newResource[models.Product](ctl, "Product", ctl.Store.Products, ctl.prepareProduct)
}

func (ctl *Controller) StockTransactions() *Resource[models.StockTransaction, *models.StockTransaction] {
	return newResource[models.StockTransaction](ctl, "Stock transaction", ctl.Store.StockTransactions, ctl.prepareStockTransaction)
}

// DeleteProduct removes the product and its whole stock log.
func (ctl *Controller) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	removed, err := ctl.Store.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		ctl.fail(c, err, "Product")
		return
	}
	ctl.changed(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "transactionsRemoved": removed})
}

// GetStockLevels derives current stock for every product from the log.
func (ctl *Controller) GetStockLevels(c *gin.Context) {
	snap, err := ctl.snapshot(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "snapshot")
		return
	}
	levels := analytics.StockLevels(snap.Products, snap.StockTransactions, ctl.Config.LowStock, ctl.today())
	summary := analytics.SummarizeInventory(levels, len(snap.StockTransactions))

	if status := c.Query("status"); status != "" {
		filtered := levels[:0]
		for _, l := range levels {
			if l.Status == status || (status == "expired" && l.Expired) {
				filtered = append(filtered, l)
			}
		}
		levels = filtered
	}
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := levels[:0]
		for _, l := range levels {
			if strings.Contains(strings.ToLower(l.Name), q) {
				filtered = append(filtered, l)
			}
		}
		levels = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"version":  snap.Version,
		"products": levels,
		"summary":  summary,
	})
}

// GetStockLog returns the transaction log grouped per product. ?q= keeps
// the products whose name contains it.
func (ctl *Controller) GetStockLog(c *gin.Context) {
	snap, err := ctl.snapshot(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "snapshot")
		return
	}
	groups := analytics.GroupTransactions(snap.StockTransactions)
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := groups[:0]
		for _, g := range groups {
			if strings.Contains(strings.ToLower(g.ProductName), q) {
				filtered = append(filtered, g)
			}
		}
		groups = filtered
	}
	if groups == nil {
		groups = []analytics.TransactionGroup{}
	}
	c.JSON(http.StatusOK, gin.H{"version": snap.Version, "groups": groups})
}
