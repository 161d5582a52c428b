package models

import "time"

// Stock transaction kinds.
const (
	StockTypeRevaluation = "revaluation"
	StockTypeTransaction = "transaction"
)

// Product is static metadata; its stock is derived from the transaction log.
type Product struct {
	Base
	Name       string    `gorm:"not null" json:"name"`
	ExpiryDate string    `gorm:"type:varchar(10)" json:"expiryDate,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// StockTransaction is one entry of a product's stock log. A revaluation
// sets the absolute quantity, a transaction adds a signed delta.
type StockTransaction struct {
	Base
	ProductID   string    `gorm:"type:varchar(36);index;not null" json:"productId"`
	ProductName string    `json:"productName"`
	Date        string    `gorm:"type:varchar(10);index;not null" json:"date"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);default:0" json:"price"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

func (StockTransaction) TableName() string { return "stock_transactions" }

func (t StockTransaction) RecordDate() string { return t.Date }
