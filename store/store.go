// Package store persists salon records. The gorm implementation backs the
// service in production; the memory implementation backs tests and demos.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"solune-backend/models"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = fmt.Errorf("store: %w", gorm.ErrRecordNotFound)

// Record is a pointer to a model embedding models.Base.
type Record[T any] interface {
	*T
	Key() *uuid.UUID
	Touch(now time.Time)
	Restamp(created time.Time)
	Created() time.Time
}

// Repository is the CRUD surface of one collection. List always returns the
// full collection in the collection's natural order.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StockLog interface {
	Repository[models.StockTransaction]
	DeleteByProduct(ctx context.Context, productID string) (int, error)
}

type UserRepository interface {
	Repository[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Store groups every collection the service reads and writes.
type Store struct {
	Appointments      Repository[models.Appointment]
	Expenses          Repository[models.Expense]
	Products          Repository[models.Product]
	StockTransactions StockLog
	Services          Repository[models.Service]
	ServiceGroups     Repository[models.ServiceGroup]
	Stylists          Repository[models.Stylist]
	Users             UserRepository
	PromotionLogs     Repository[models.PromotionLog]

	db *gorm.DB
}

// Models lists every persisted type, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.ServiceGroup{},
		&models.Service{},
		&models.Stylist{},
		&models.Appointment{},
		&models.Expense{},
		&models.Product{},
		&models.StockTransaction{},
		&models.PromotionLog{},
	}
}

// DeleteProduct removes a product together with its stock log and reports
// how many transactions went with it.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) (int, error) {
	if s.db == nil {
		return deleteProduct(ctx, s, id)
	}
	var removed int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = deleteProduct(ctx, New(tx), id)
		return err
	})
	return removed, err
}

func deleteProduct(ctx context.Context, s *Store, id uuid.UUID) (int, error) {
	if _, err := s.Products.Get(ctx, id); err != nil {
		return 0, err
	}
	removed, err := s.StockTransactions.DeleteByProduct(ctx, id.String())
	if err != nil {
		return 0, fmt.Errorf("delete stock log: %w", err)
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		return 0, err
	}
	return removed, nil
}
