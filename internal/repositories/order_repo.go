package repositories

import (
	"delight/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByNumber(number uint) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(number uint, status string) error
	// UpdateStatusByMessageID resolves the order through the Discord
	// message carrying its notification. Interaction callbacks only know
	// the message id, not the order number.
	UpdateStatusByMessageID(messageID string, status string) error
}
