package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solune-backend/models"
)

func TestCatalogValidation(t *testing.T) {
	h := newHarness(t, nil)

	for _, tc := range []struct {
		path string
		body gin.H
	}{
		{"/api/services", gin.H{"name": "", "price": 100}},
		{"/api/services", gin.H{"name": "Cut", "price": -1}},
		{"/api/services", gin.H{"name": "Cut", "price": 100, "category": "kids"}},
		{"/api/service-groups", gin.H{"name": " "}},
		{"/api/stylists", gin.H{"name": ""}},
		{"/api/expenses", gin.H{"item": "", "amount": 10, "date": "2026-03-01"}},
		{"/api/expenses", gin.H{"item": "Rent", "amount": -10, "date": "2026-03-01"}},
		{"/api/expenses", gin.H{"item": "Rent", "amount": 10, "date": "March"}},
	} {
		w := h.do(http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %v", tc.path, tc.body)
	}
}

func TestServiceGroupsOrdered(t *testing.T) {
	h := newHarness(t, nil)
	h.create("/api/service-groups", gin.H{"name": "Hair", "order": 2})
	h.create("/api/service-groups", gin.H{"name": "Nails", "order": 1})
	h.create("/api/service-groups", gin.H{"name": "Facial", "order": 2})

	w := h.do(http.MethodGet, "/api/service-groups", nil)
	require.Equal(t, http.StatusOK, w.Code)
	groups := decode[[]models.ServiceGroup](t, w)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"Nails", "Facial", "Hair"}, []string{groups[0].Name, groups[1].Name, groups[2].Name})

	stylist := h.create("/api/stylists", gin.H{"name": "Ravi", "gender": "male"})
	w = h.do(http.MethodPut, "/api/stylists/"+stylist, gin.H{"name": "Ravi K"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ravi K", decode[models.Stylist](t, w).Name)
}
