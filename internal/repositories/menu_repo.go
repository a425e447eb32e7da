package repositories

import (
	"sort"
	"sync"

	"delight/internal/models"

	"github.com/shopspring/decimal"
)

// MenuRepository defines the interface for catalog lookups.
type MenuRepository interface {
	GetAll() ([]models.MenuItem, error)
	GetByID(id string) (*models.MenuItem, error)
}

// StaticMenuRepository is an immutable, in-memory implementation of
// MenuRepository. It is the single source of truth for the catalog:
// both the rendered order form and the intake pricing read from it.
type StaticMenuRepository struct {
	items map[string]models.MenuItem
	order []string // preserves seed order for listing
	mu    sync.RWMutex
}

// NewStaticMenuRepository creates a catalog from the given items.
func NewStaticMenuRepository(items []models.MenuItem) *StaticMenuRepository {
	repo := &StaticMenuRepository{
		items: make(map[string]models.MenuItem, len(items)),
		order: make([]string, 0, len(items)),
	}
	for _, item := range items {
		if _, ok := repo.items[item.ID]; !ok {
			repo.order = append(repo.order, item.ID)
		}
		repo.items[item.ID] = item
	}
	return repo
}

// GetAll returns the catalog in seed order.
func (r *StaticMenuRepository) GetAll() ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.MenuItem, 0, len(r.items))
	for _, id := range r.order {
		itemList = append(itemList, r.items[id])
	}
	return itemList, nil
}

// GetByID returns the menu item for the given id. Unknown ids resolve to
// a zero-price placeholder rather than an error, so a stale form cannot
// fail an order submission.
func (r *StaticMenuRepository) GetByID(id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return &models.MenuItem{ID: id, Name: "Menu inconnu", Price: decimal.Zero}, nil
	}
	return &item, nil
}

// IDs returns the known menu ids, sorted. Used by tests and seeding checks.
func (r *StaticMenuRepository) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
