package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solune-backend/models"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	e := &models.Expense{Item: "Towels", Amount: 250, Date: "2026-03-15"}
	require.NoError(t, s.Expenses.Create(ctx, e))
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.False(t, e.CreatedAt.IsZero())

	got, err := s.Expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Towels", got.Item)

	got.Amount = 300
	require.NoError(t, s.Expenses.Update(ctx, got))
	again, err := s.Expenses.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, again.Amount)

	require.NoError(t, s.Expenses.Delete(ctx, e.ID))
	_, err = s.Expenses.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Expenses.Delete(ctx, e.ID), ErrNotFound)
	assert.ErrorIs(t, s.Expenses.Update(ctx, e), ErrNotFound)
}

func TestMemoryOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	base := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"Old", "New", "Mid"} {
		offset := map[string]time.Duration{"Old": 0, "New": 2 * time.Hour, "Mid": time.Hour}[name]
		require.NoError(t, s.Appointments.Create(ctx, &models.Appointment{Name: name, Phone: string(rune('1' + i)), Timestamp: base.Add(offset)}))
	}
	apts, err := s.Appointments.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"New", "Mid", "Old"}, []string{apts[0].Name, apts[1].Name, apts[2].Name})

	log := []models.StockTransaction{
		{ProductID: "p", Date: "2026-03-02", Timestamp: base},
		{ProductID: "p", Date: "2026-03-01", Timestamp: base.Add(time.Hour)},
		{ProductID: "p", Date: "2026-03-01", Timestamp: base},
	}
	for i := range log {
		require.NoError(t, s.StockTransactions.Create(ctx, &log[i]))
	}
	txns, err := s.StockTransactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, log[2].ID, txns[0].ID)
	assert.Equal(t, log[1].ID, txns[1].ID)
	assert.Equal(t, log[0].ID, txns[2].ID)
}

func TestDeleteProductCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	keep := &models.Product{Name: "Keep"}
	drop := &models.Product{Name: "Drop"}
	require.NoError(t, s.Products.Create(ctx, keep))
	require.NoError(t, s.Products.Create(ctx, drop))
	for _, p := range []*models.Product{keep, drop, drop} {
		require.NoError(t, s.StockTransactions.Create(ctx, &models.StockTransaction{
			ProductID: p.ID.String(), ProductName: p.Name, Date: "2026-03-01", Type: models.StockTypeTransaction, Quantity: 1,
		}))
	}

	removed, err := s.DeleteProduct(ctx, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	txns, err := s.StockTransactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, keep.ID.String(), txns[0].ProductID)

	_, err = s.DeleteProduct(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindUserByEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Users.Create(ctx, &models.User{Email: "owner@solune.in", Name: "Owner", Password: "x"}))

	u, err := s.Users.FindByEmail(ctx, "Owner@Solune.in")
	require.NoError(t, err)
	assert.Equal(t, "Owner", u.Name)

	_, err = s.Users.FindByEmail(ctx, "nobody@solune.in")
	assert.ErrorIs(t, err, ErrNotFound)
}
