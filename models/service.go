package models

type Service struct {
	Base
	Name     string  `gorm:"not null" json:"name"`
	Category string  `gorm:"type:varchar(10)" json:"category"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	GroupID  string  `gorm:"type:varchar(36);index" json:"groupId,omitempty"`
}

// ServiceGroup organises services; some group names are exempt from discounts.
type ServiceGroup struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Category string `gorm:"type:varchar(10)" json:"category"`
	Order    int    `gorm:"column:sort_order;default:0" json:"order"`
}

type Stylist struct {
	Base
	Name   string `gorm:"not null" json:"name"`
	Gender string `gorm:"type:varchar(10)" json:"gender"`
}
