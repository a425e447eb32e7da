package repositories

import (
	"fmt"

	"delight/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their line items, oldest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("number").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByNumber retrieves a single order by its number.
func (r *GORMOrderRepository) GetByNumber(number uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "number = ?", number).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order #%d not found", number)
		}
		return nil, fmt.Errorf("failed to get order #%d: %w", number, err)
	}
	return &order, nil
}

// Create persists a new order. GORM assigns the order number and cascades
// the line items through the Items association.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus updates the status of an order by its number.
func (r *GORMOrderRepository) UpdateStatus(number uint, status string) error {
	res := r.db.Model(&models.Order{}).Where("number = ?", number).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order #%d not found for status update", number)
	}
	return nil
}

// UpdateStatusByMessageID updates the status of the order whose
// notification lives in the given Discord message.
func (r *GORMOrderRepository) UpdateStatusByMessageID(messageID string, status string) error {
	res := r.db.Model(&models.Order{}).Where("message_id = ?", messageID).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("no order found for message %s", messageID)
	}
	return nil
}
