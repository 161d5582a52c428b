// models/promotion.go
package models

import "time"

// PromotionLog records one outbound promotional message.
type PromotionLog struct {
	Base
	Phone     string    `gorm:"index;not null" json:"phone"`
	Name      string    `json:"name"`
	Template  string    `gorm:"type:varchar(20)" json:"template"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	Retried   bool      `json:"retried"`
	MessageID string    `json:"messageId,omitempty"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	Channel   string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt    time.Time `json:"sentAt"`
}

// PromotionTemplate is a canned promotional message.
type PromotionTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
