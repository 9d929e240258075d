package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderType represents how an order is served
type OrderType string

const (
	DineIn  OrderType = "dine_in"
	TakeOut OrderType = "take_out"
)

// ParseOrderType validates a raw order type string
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case DineIn, TakeOut:
		return OrderType(s), nil
	default:
		return "", fmt.Errorf("order_type must be one of: dine_in, take_out")
	}
}

// PaymentMethod represents how an order was paid
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentDigital PaymentMethod = "digital"
)

// ParsePaymentMethod validates a raw payment method string
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentDigital:
		return PaymentMethod(s), nil
	default:
		return "", fmt.Errorf("payment_method must be one of: cash, card, digital")
	}
}

// OrderStatus represents the lifecycle status of a persisted order
type OrderStatus string

const (
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
	StatusRefunded  OrderStatus = "refunded"
)

// Order represents a persisted sale. Immutable once committed except for
// status transitions performed by administrative flows.
type Order struct {
	ID              int             `json:"id,omitempty" db:"id"`
	Number          string          `json:"order_number" db:"order_number"`
	CashierID       int             `json:"cashier_id" db:"cashier_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	PaymentMethod   PaymentMethod   `json:"payment_method" db:"payment_method"`
	PaymentReceived decimal.Decimal `json:"payment_received" db:"payment_received"`
	ChangeAmount    decimal.Decimal `json:"change_amount" db:"change_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// OrderLine represents one sold item within an order. The unit price is
// snapshotted at time of sale so historical orders keep their value when
// catalog prices change later.
type OrderLine struct {
	ID         int             `json:"id,omitempty" db:"id"`
	OrderID    int             `json:"order_id,omitempty" db:"order_id"`
	FoodItemID int             `json:"food_item_id" db:"food_item_id"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal" db:"subtotal"`
	Notes      *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// OrderSummary is one row of the recent orders listing, annotated with the
// cashier display name and a count of the order's lines.
type OrderSummary struct {
	ID            int             `json:"id"`
	Number        string          `json:"order_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	CashierName   string          `json:"cashier_name"`
	ItemCount     int             `json:"item_count"`
}

// DailySales aggregates completed orders for one calendar date, with
// sales split by payment method.
type DailySales struct {
	Date         string          `json:"sale_date"`
	OrderCount   int             `json:"order_count"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	AverageSale  decimal.Decimal `json:"average_sale"`
	CashSales    decimal.Decimal `json:"cash_sales"`
	CardSales    decimal.Decimal `json:"card_sales"`
	DigitalSales decimal.Decimal `json:"digital_sales"`
}
