package report

import (
	"context"
	"fmt"
	"time"

	"lilypay/internal/database"
	"lilypay/internal/models"
)

// Store reads persisted orders for reporting.
type Store interface {
	RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error)
	DailySales(ctx context.Context) ([]models.DailySales, error)
}

// Repository is the PostgreSQL-backed reporting Store.
type Repository struct {
	db *database.DB
}

// NewRepository creates a reporting repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// RecentOrders returns the most recently created orders, newest first,
// each with its cashier name and line count.
func (r *Repository) RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error) {
	rows, err := r.db.Query(ctx, database.GetRecentOrdersSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	var summaries []models.OrderSummary
	for rows.Next() {
		var s models.OrderSummary
		err := rows.Scan(
			&s.ID,
			&s.Number,
			&s.TotalAmount,
			&s.PaymentMethod,
			&s.Status,
			&s.CreatedAt,
			&s.CashierName,
			&s.ItemCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// DailySales returns per-day aggregates over completed orders, newest
// date first. Cancelled and refunded orders are excluded by the query.
func (r *Repository) DailySales(ctx context.Context) ([]models.DailySales, error) {
	rows, err := r.db.Query(ctx, database.GetDailySalesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	var days []models.DailySales
	for rows.Next() {
		var day models.DailySales
		var date time.Time
		err := rows.Scan(
			&date,
			&day.OrderCount,
			&day.TotalSales,
			&day.AverageSale,
			&day.CashSales,
			&day.CardSales,
			&day.DigitalSales,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily sales row: %w", err)
		}
		day.Date = date.Format("2006-01-02")
		days = append(days, day)
	}

	return days, rows.Err()
}
