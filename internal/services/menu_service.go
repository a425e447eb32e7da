package services

import (
	"delight/internal/models"
	"delight/internal/repositories"
)

// MenuService handles read access to the catalog.
type MenuService struct {
	repo repositories.MenuRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(repo repositories.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// GetAllMenus retrieves the full catalog in display order.
func (s *MenuService) GetAllMenus() ([]models.MenuItem, error) {
	return s.repo.GetAll()
}

// GetMenuByID retrieves a single menu item by its id.
func (s *MenuService) GetMenuByID(id string) (*models.MenuItem, error) {
	return s.repo.GetByID(id)
}
