package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"solune-backend/models"
)

type gormRepo[T any, P Record[T]] struct {
	db    *gorm.DB
	order string
}

func newGormRepo[T any, P Record[T]](db *gorm.DB, order string) *gormRepo[T, P] {
	return &gormRepo[T, P]{db: db, order: order}
}

func (r *gormRepo[T, P]) List(ctx context.Context) ([]T, error) {
	var out []T
	q := r.db.WithContext(ctx)
	if r.order != "" {
		q = q.Order(r.order)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepo[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var v T
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *gormRepo[T, P]) Create(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// Update writes every column, zero values included.
func (r *gormRepo[T, P]) Update(ctx context.Context, v *T) error {
	res := r.db.WithContext(ctx).Model(v).Select("*").Omit("id", "created_at").Updates(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepo[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(P(new(T)), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type gormStockLog struct {
	*gormRepo[models.StockTransaction, *models.StockTransaction]
}

func (r gormStockLog) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.StockTransaction{})
	return int(res.RowsAffected), res.Error
}

type gormUsers struct {
	*gormRepo[models.User, *models.User]
}

func (r gormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// New builds a Store over a gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{
		Appointments:      newGormRepo[models.Appointment](db, "timestamp desc, created_at desc"),
		Expenses:          newGormRepo[models.Expense](db, "timestamp desc, created_at desc"),
		Products:          newGormRepo[models.Product](db, "name asc"),
		StockTransactions: gormStockLog{newGormRepo[models.StockTransaction](db, "date asc, timestamp asc, created_at asc")},
		Services:          newGormRepo[models.Service](db, "name asc"),
		ServiceGroups:     newGormRepo[models.ServiceGroup](db, "sort_order asc, name asc"),
		Stylists:          newGormRepo[models.Stylist](db, "name asc"),
		Users:             gormUsers{newGormRepo[models.User](db, "created_at asc")},
		PromotionLogs:     newGormRepo[models.PromotionLog](db, "sent_at desc"),
		db:                db,
	}
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
