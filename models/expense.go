package models

import "time"

type Expense struct {
	Base
	Item      string    `gorm:"not null" json:"item"`
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date      string    `gorm:"type:varchar(10);index;not null" json:"date"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (e Expense) RecordDate() string { return e.Date }
