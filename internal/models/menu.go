package models

import "github.com/shopspring/decimal"

// MenuItem represents one package on the restaurant's catering menu.
type MenuItem struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price"`
}
