package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solune-backend/analytics"
	"solune-backend/models"
)

type stockBody struct {
	Products []analytics.ProductStock   `json:"products"`
	Summary  analytics.InventorySummary `json:"summary"`
}

func TestStockLevelsAndCascadeDelete(t *testing.T) {
	h := newHarness(t, nil)
	shampoo := h.create("/api/products", gin.H{"name": "Shampoo"})
	wax := h.create("/api/products", gin.H{"name": "Wax", "expiryDate": "2020-01-01"})

	h.create("/api/stock-transactions", gin.H{"productId": shampoo, "date": "2026-03-01", "type": "revaluation", "quantity": 10})
	h.create("/api/stock-transactions", gin.H{"productId": shampoo, "date": "2026-03-02", "type": "transaction", "quantity": -3})
	h.create("/api/stock-transactions", gin.H{"productId": wax, "date": "2026-03-02", "type": "transaction", "quantity": 2})

	w := h.do(http.MethodGet, "/api/inventory/stock", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[stockBody](t, w)
	require.Len(t, body.Products, 2)
	stock := map[string]analytics.ProductStock{}
	for _, p := range body.Products {
		stock[p.Name] = p
	}
	assert.Equal(t, 7, stock["Shampoo"].CurrentStock)
	assert.Equal(t, analytics.StockOK, stock["Shampoo"].Status)
	assert.Equal(t, 2, stock["Wax"].CurrentStock)
	assert.Equal(t, analytics.StockLow, stock["Wax"].Status)
	assert.True(t, stock["Wax"].Expired)
	assert.Equal(t, analytics.InventorySummary{Products: 2, Transactions: 3, LowStock: 1, Expired: 1}, body.Summary)

	w = h.do(http.MethodGet, "/api/inventory/stock?status=low", nil)
	body = decode[stockBody](t, w)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Wax", body.Products[0].Name)
	assert.Equal(t, 2, body.Summary.Products)

	w = h.do(http.MethodGet, "/api/inventory/stock?q=sham", nil)
	assert.Len(t, decode[stockBody](t, w).Products, 1)

	w = h.do(http.MethodGet, "/api/inventory/transactions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	groups := decode[struct {
		Groups []analytics.TransactionGroup `json:"groups"`
	}](t, w).Groups
	require.Len(t, groups, 2)
	assert.Equal(t, "Shampoo", groups[0].ProductName)
	assert.Len(t, groups[0].Transactions, 2)

	w = h.do(http.MethodGet, "/api/inventory/transactions?q=WA", nil)
	groups = decode[struct {
		Groups []analytics.TransactionGroup `json:"groups"`
	}](t, w).Groups
	require.Len(t, groups, 1)
	assert.Equal(t, "Wax", groups[0].ProductName)
	assert.Equal(t, 2, groups[0].CurrentStock)

	w = h.do(http.MethodDelete, "/api/products/"+shampoo, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[gin.H](t, w)["transactionsRemoved"])

	w = h.do(http.MethodGet, "/api/stock-transactions", nil)
	left := decode[[]models.StockTransaction](t, w)
	require.Len(t, left, 1)
	assert.Equal(t, wax, left[0].ProductID)

	w = h.do(http.MethodDelete, "/api/products/"+shampoo, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockTransactionValidation(t *testing.T) {
	h := newHarness(t, nil)
	product := h.create("/api/products", gin.H{"name": "Serum"})

	for name, body := range map[string]gin.H{
		"unknown product":      {"productId": "00000000-0000-0000-0000-000000000001", "date": "2026-03-01", "type": "revaluation", "quantity": 1},
		"missing product":      {"date": "2026-03-01", "type": "revaluation", "quantity": 1},
		"bad type":             {"productId": product, "date": "2026-03-01", "type": "gift", "quantity": 1},
		"negative revaluation": {"productId": product, "date": "2026-03-01", "type": "revaluation", "quantity": -1},
		"bad date":             {"productId": product, "date": "yesterday", "type": "transaction", "quantity": 1},
	} {
		w := h.do(http.MethodPost, "/api/stock-transactions", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	w := h.do(http.MethodPost, "/api/stock-transactions", gin.H{"productId": product, "date": "2026-03-01", "type": "transaction", "quantity": 4})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Serum", decode[models.StockTransaction](t, w).ProductName)
}
