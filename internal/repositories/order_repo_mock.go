package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"delight/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[uint]models.Order
	next   uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		next:   1,
	}
}

// GetAll returns all orders, oldest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool { return orderList[i].Number < orderList[j].Number })
	return orderList, nil
}

// GetByNumber returns an order by its number.
func (r *MockOrderRepository) GetByNumber(number uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[number]
	if !ok {
		return nil, fmt.Errorf("order #%d not found", number)
	}
	return &order, nil
}

// Create adds a new order, assigning the next order number.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.Number == 0 {
		order.Number = r.next
		r.next++
	} else if order.Number >= r.next {
		r.next = order.Number + 1
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.Number] = *order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(number uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[number]
	if !ok {
		return fmt.Errorf("order #%d not found for status update", number)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[number] = order
	return nil
}

// UpdateStatusByMessageID updates the status of the order whose
// notification lives in the given Discord message.
func (r *MockOrderRepository) UpdateStatusByMessageID(messageID string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for number, order := range r.orders {
		if order.MessageID == messageID {
			order.Status = status
			order.UpdatedAt = time.Now()
			r.orders[number] = order
			return nil
		}
	}
	return fmt.Errorf("no order found for message %s", messageID)
}
