package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Payment methods recorded on a sale.
const (
	PaymentCash       = "Cash"
	PaymentUPI        = "UPI"
	PaymentCard       = "Card"
	PaymentCreditCard = "Credit Card"
	PaymentDebitCard  = "Debit Card"
	PaymentOther      = "Other"
)

// Service categories.
const (
	CategoryMen   = "men"
	CategoryWomen = "women"
	CategoryBoth  = "both"
)

// Appointment is a completed sale. Date is a fixed-width yyyy-MM-dd string.
type Appointment struct {
	Base
	Name          string       `gorm:"not null" json:"name"`
	Phone         string       `gorm:"index;not null" json:"phone"`
	Service       string       `json:"service,omitempty"`
	Stylist       string       `json:"stylist,omitempty"`
	Services      ServiceLines `gorm:"type:jsonb;default:'[]'" json:"services"`
	Date          string       `gorm:"type:varchar(10);index;not null" json:"date"`
	Amount        float64      `gorm:"type:decimal(10,2);not null" json:"amount"`
	Discount      float64      `gorm:"type:decimal(5,2);default:0" json:"discount"`
	PaymentMethod string       `json:"paymentMethod"`
	Timestamp     time.Time    `gorm:"index" json:"timestamp"`
}

// ServiceLine is one service performed within an appointment.
type ServiceLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stylist  string  `json:"stylist,omitempty"`
	Category string  `json:"category,omitempty"`
	GroupID  string  `json:"groupId,omitempty"`
}

type ServiceLines []ServiceLine

func (s ServiceLines) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *ServiceLines) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*s = nil
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

func (a Appointment) RecordDate() string { return a.Date }

// Sale is either a LegacySale or a MultiServiceSale.
type Sale interface {
	isSale()
}

// LegacySale is the old single-service record shape.
type LegacySale struct {
	Service string
	Stylist string
	Amount  float64
}

// MultiServiceSale is a sale carrying an itemised service list.
type MultiServiceSale struct {
	Services []ServiceLine
}

func (LegacySale) isSale()       {}
func (MultiServiceSale) isSale() {}

// Sale classifies the appointment by shape.
func (a Appointment) Sale() Sale {
	if len(a.Services) == 0 {
		return LegacySale{Service: a.Service, Stylist: a.Stylist, Amount: a.Amount}
	}
	return MultiServiceSale{Services: a.Services}
}
