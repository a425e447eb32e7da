package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values as they appear in the Discord notification.
const (
	StatusNew        = "Nouvelle"
	StatusProcessing = "En cours de traitement"
	StatusProcessed  = "Traitée"
)

// OrderItem represents a single menu line within an order.
type OrderItem struct {
	ID          uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderNumber uint            `json:"-" gorm:"index"`
	MenuID      string          `json:"menu_id" gorm:"type:varchar(50)"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2)"` // Price at the time of order
}

// Order represents a customer order. The order number doubles as the
// primary key and as the reference printed in the Discord notification.
type Order struct {
	Number            uint            `json:"number" gorm:"primaryKey;autoIncrement"`
	CompanyName       string          `json:"company_name"`
	Phone             string          `json:"phone"`
	AvailabilityStart string          `json:"availability_start" gorm:"type:varchar(5)"` // "HH:MM"
	AvailabilityEnd   string          `json:"availability_end" gorm:"type:varchar(5)"`
	Items             []OrderItem     `json:"items" gorm:"foreignKey:OrderNumber"`
	Notes             string          `json:"notes,omitempty"`
	TotalPrice        decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2)"`
	Status            string          `json:"status"` // "Nouvelle", "En cours de traitement", "Traitée"
	MessageID         string          `json:"-" gorm:"index;type:varchar(32)"` // Discord message carrying the notification
	ChannelID         string          `json:"-" gorm:"type:varchar(32)"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
