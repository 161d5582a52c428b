package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"solune-backend/models"
)

type memRepo[T any, P Record[T]] struct {
	mu    sync.RWMutex
	items []T
	less  func(a, b *T) bool
	now   func() time.Time
}

func newMemRepo[T any, P Record[T]](less func(a, b *T) bool) *memRepo[T, P] {
	return &memRepo[T, P]{less: less, now: time.Now}
}

func (r *memRepo[T, P]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	r.mu.RUnlock()

	if r.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return r.less(&out[i], &out[j]) })
	}
	return out, nil
}

func (r *memRepo[T, P]) index(id uuid.UUID) int {
	for i := range r.items {
		if *P(&r.items[i]).Key() == id {
			return i
		}
	}
	return -1
}

func (r *memRepo[T, P]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	v := r.items[i]
	return &v, nil
}

func (r *memRepo[T, P]) Create(ctx context.Context, v *T) error {
	p := P(v)
	if *p.Key() == uuid.Nil {
		*p.Key() = uuid.New()
	}
	p.Touch(r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *v)
	return nil
}

func (r *memRepo[T, P]) Update(ctx context.Context, v *T) error {
	p := P(v)
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(*p.Key())
	if i < 0 {
		return ErrNotFound
	}
	p.Touch(r.now())
	r.items[i] = *v
	return nil
}

func (r *memRepo[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

// deleteWhere drops every matching item and returns how many went.
func (r *memRepo[T, P]) deleteWhere(match func(*T) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	removed := 0
	for i := range r.items {
		if match(&r.items[i]) {
			removed++
			continue
		}
		kept = append(kept, r.items[i])
	}
	r.items = kept
	return removed
}

func (r *memRepo[T, P]) find(match func(*T) bool) (*T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if match(&r.items[i]) {
			v := r.items[i]
			return &v, true
		}
	}
	return nil, false
}

type memStockLog struct {
	*memRepo[models.StockTransaction, *models.StockTransaction]
}

func (r memStockLog) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	return r.deleteWhere(func(t *models.StockTransaction) bool { return t.ProductID == productID }), nil
}

type memUsers struct {
	*memRepo[models.User, *models.User]
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// NewMemory builds a Store kept entirely in process memory. Collections
// come back in the same order the gorm store uses.
func NewMemory() *Store {
	return &Store{
		Appointments: newMemRepo[models.Appointment](func(a, b *models.Appointment) bool {
			return a.Timestamp.After(b.Timestamp)
		}),
		Expenses: newMemRepo[models.Expense](func(a, b *models.Expense) bool {
			return a.Timestamp.After(b.Timestamp)
		}),
		Products: newMemRepo[models.Product](func(a, b *models.Product) bool {
			return a.Name < b.Name
		}),
		StockTransactions: memStockLog{newMemRepo[models.StockTransaction](func(a, b *models.StockTransaction) bool {
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.Timestamp.Before(b.Timestamp)
		})},
		Services: newMemRepo[models.Service](func(a, b *models.Service) bool {
			return a.Name < b.Name
		}),
		ServiceGroups: newMemRepo[models.ServiceGroup](func(a, b *models.ServiceGroup) bool {
			if a.Order != b.Order {
				return a.Order < b.Order
			}
			return a.Name < b.Name
		}),
		Stylists: newMemRepo[models.Stylist](func(a, b *models.Stylist) bool {
			return a.Name < b.Name
		}),
		Users: memUsers{newMemRepo[models.User](nil)},
		PromotionLogs: newMemRepo[models.PromotionLog](func(a, b *models.PromotionLog) bool {
			return a.SentAt.After(b.SentAt)
		}),
	}
}
