package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and bookkeeping columns shared by every record.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key exposes the primary key so generic repositories can read and assign it.
func (b *Base) Key() *uuid.UUID {
	return &b.ID
}

// Initialize UUID before creating
func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// Touch sets the bookkeeping timestamps outside of gorm.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (b *Base) Created() time.Time {
	return b.CreatedAt
}

// Restamp pins CreatedAt to created, discarding whatever a request body
// carried, and clears UpdatedAt for the store to set.
func (b *Base) Restamp(created time.Time) {
	b.CreatedAt = created
	b.UpdatedAt = time.Time{}
}
