package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lilypay/internal/database"
	"lilypay/internal/models"
)

// Store reads and manages the menu catalog.
type Store interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Subcategories(ctx context.Context, categoryID int) ([]models.Subcategory, error)
	FoodItems(ctx context.Context, subcategoryID int) ([]models.FoodItem, error)
	FoodItemByID(ctx context.Context, id int) (*models.FoodItem, error)
	MenuDetails(ctx context.Context) ([]models.MenuItem, error)
	InsertCategory(ctx context.Context, c *models.Category) error
	InsertFoodItem(ctx context.Context, item *models.FoodItem) error
	SetAvailability(ctx context.Context, itemID int, available bool) error
}

// ErrItemNotFound is returned when looking up a nonexistent food item.
var ErrItemNotFound = errors.New("catalog: food item not found")

// Repository is the PostgreSQL-backed catalog Store.
type Repository struct {
	db *database.DB
}

// NewRepository creates a catalog repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Categories lists active categories in display order.
func (r *Repository) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, database.GetCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// Subcategories lists active subcategories, optionally scoped to one
// category. Zero categoryID means all.
func (r *Repository) Subcategories(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if categoryID > 0 {
		rows, err = r.db.Query(ctx, database.GetSubcategoriesByCategorySQL, categoryID)
	} else {
		rows, err = r.db.Query(ctx, database.GetSubcategoriesSQL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	var subcategories []models.Subcategory
	for rows.Next() {
		var s models.Subcategory
		err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.IsActive, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subcategories = append(subcategories, s)
	}

	return subcategories, rows.Err()
}

// FoodItems lists available items, optionally scoped to one subcategory.
// Zero subcategoryID means all.
func (r *Repository) FoodItems(ctx context.Context, subcategoryID int) ([]models.FoodItem, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if subcategoryID > 0 {
		rows, err = r.db.Query(ctx, database.GetFoodItemsBySubcategorySQL, subcategoryID)
	} else {
		rows, err = r.db.Query(ctx, database.GetFoodItemsSQL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}
	defer rows.Close()

	var items []models.FoodItem
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// FoodItemByID fetches one item regardless of availability; callers
// decide what an unavailable item means for them.
func (r *Repository) FoodItemByID(ctx context.Context, id int) (*models.FoodItem, error) {
	row := r.db.QueryRow(ctx, database.GetFoodItemByIDSQL, id)
	item, err := scanFoodItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// MenuDetails returns the denormalized menu view for display.
func (r *Repository) MenuDetails(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.GetMenuDetailsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu details: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		err := rows.Scan(
			&m.ID, &m.Name, &m.Description, &m.Price, &m.Cost,
			&m.IsAvailable, &m.StockQuantity,
			&m.SubcategoryID, &m.SubcategoryName,
			&m.CategoryID, &m.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	return items, rows.Err()
}

// InsertCategory persists a new category and fills in its ID.
func (r *Repository) InsertCategory(ctx context.Context, c *models.Category) error {
	err := r.db.QueryRow(ctx, database.InsertCategorySQL, c.Name, c.Description, c.DisplayOrder).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// InsertFoodItem persists a new food item and fills in its ID.
func (r *Repository) InsertFoodItem(ctx context.Context, item *models.FoodItem) error {
	err := r.db.QueryRow(ctx, database.InsertFoodItemSQL,
		item.SubcategoryID, item.Name, item.Description, item.Price, item.Cost,
		item.StockQuantity, item.DisplayOrder,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert food item: %w", err)
	}
	return nil
}

// SetAvailability toggles whether an item can be sold.
func (r *Repository) SetAvailability(ctx context.Context, itemID int, available bool) error {
	if err := r.db.Exec(ctx, database.SetFoodItemAvailabilitySQL, available, itemID); err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	return nil
}

func scanFoodItem(row pgx.Row) (*models.FoodItem, error) {
	var item models.FoodItem
	err := row.Scan(
		&item.ID,
		&item.SubcategoryID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Cost,
		&item.ImagePath,
		&item.IsAvailable,
		&item.StockQuantity,
		&item.DisplayOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan food item: %w", err)
	}
	return &item, nil
}
