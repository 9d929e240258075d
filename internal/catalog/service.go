package catalog

import (
	"context"
	"errors"
	"fmt"

	"lilypay/internal/logger"
	"lilypay/internal/models"
)

// ErrItemUnavailable is returned when a cashier tries to sell an item
// that is flagged unavailable.
var ErrItemUnavailable = errors.New("catalog: food item is not available")

// Service exposes the menu catalog to the register and to admin
// management flows.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a catalog service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories(ctx)
}

func (s *Service) Subcategories(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	return s.store.Subcategories(ctx, categoryID)
}

func (s *Service) FoodItems(ctx context.Context, subcategoryID int) ([]models.FoodItem, error) {
	return s.store.FoodItems(ctx, subcategoryID)
}

func (s *Service) MenuDetails(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.MenuDetails(ctx)
}

// SellableItem fetches an item for adding to a cart, rejecting items
// flagged unavailable.
func (s *Service) SellableItem(ctx context.Context, itemID int) (*models.FoodItem, error) {
	item, err := s.store.FoodItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, ErrItemUnavailable
	}
	return item, nil
}

// CreateCategory validates and persists a new category.
func (s *Service) CreateCategory(ctx context.Context, c *models.Category, requestID string) error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}

	if err := s.store.InsertCategory(ctx, c); err != nil {
		return err
	}

	s.logger.Info("category_created", "Category created", requestID, map[string]interface{}{
		"category_id": c.ID,
		"name":        c.Name,
	})
	return nil
}

// CreateFoodItem validates and persists a new food item.
func (s *Service) CreateFoodItem(ctx context.Context, item *models.FoodItem, requestID string) error {
	if item.Name == "" {
		return fmt.Errorf("item name is required")
	}
	if item.SubcategoryID <= 0 {
		return fmt.Errorf("subcategory_id is required")
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("price must not be negative")
	}
	if item.Cost.IsNegative() {
		return fmt.Errorf("cost must not be negative")
	}

	if err := s.store.InsertFoodItem(ctx, item); err != nil {
		return err
	}

	s.logger.Info("food_item_created", "Food item created", requestID, map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
		"price":   item.Price.String(),
	})
	return nil
}

// SetAvailability toggles whether an item can be sold.
func (s *Service) SetAvailability(ctx context.Context, itemID int, available bool, requestID string) error {
	if itemID <= 0 {
		return fmt.Errorf("item id is required")
	}

	if err := s.store.SetAvailability(ctx, itemID, available); err != nil {
		return err
	}

	s.logger.Info("availability_updated", "Food item availability updated", requestID, map[string]interface{}{
		"item_id":   itemID,
		"available": available,
	})
	return nil
}
