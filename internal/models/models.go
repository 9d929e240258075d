package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Role is a user's access level at the register
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// ParseRole validates a raw role string
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCashier:
		return Role(s), nil
	default:
		return "", fmt.Errorf("role must be one of: admin, cashier")
	}
}

// User is a staff account able to sign in at the register.
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	FullName     string    `json:"full_name" db:"full_name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Category is a top-level menu grouping.
type Category struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Subcategory is a second-level menu grouping under one category.
type Subcategory struct {
	ID           int       `json:"id" db:"id"`
	CategoryID   int       `json:"category_id" db:"category_id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// FoodItem is one sellable menu entry. Price is what the customer pays,
// cost is what the kitchen spends making it.
type FoodItem struct {
	ID            int             `json:"id" db:"id"`
	SubcategoryID int             `json:"subcategory_id" db:"subcategory_id"`
	Name          string          `json:"name" db:"name"`
	Description   *string         `json:"description,omitempty" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Cost          decimal.Decimal `json:"cost" db:"cost"`
	ImagePath     *string         `json:"image_path,omitempty" db:"image_path"`
	IsAvailable   bool            `json:"is_available" db:"is_available"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	DisplayOrder  int             `json:"display_order" db:"display_order"`
	CreatedAt     time.Time       `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at,omitempty" db:"updated_at"`
}

// MenuItem is the denormalized menu view joining items to their
// subcategory and category names for display.
type MenuItem struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	IsAvailable     bool            `json:"is_available"`
	StockQuantity   int             `json:"stock_quantity"`
	SubcategoryID   int             `json:"subcategory_id"`
	SubcategoryName string          `json:"subcategory_name"`
	CategoryID      int             `json:"category_id"`
	CategoryName    string          `json:"category_name"`
}
