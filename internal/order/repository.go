package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lilypay/internal/database"
	"lilypay/internal/models"
)

const uniqueViolationCode = "23505"

// Store persists finalized orders.
type Store interface {
	// CreateOrder persists the order header and all of its lines as a
	// single all-or-nothing unit of work and returns the order ID.
	CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) (int, error)

	// OrderByNumber loads a committed order and its lines.
	OrderByNumber(ctx context.Context, number string) (*models.Order, []models.OrderLine, error)
}

// Repository is the PostgreSQL-backed Store.
type Repository struct {
	db *database.DB
}

// NewRepository creates an order repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts the order header plus one row per line inside a
// transaction. Any failure rolls the whole unit back so a header is
// never observable without all of its lines.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, &StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	var orderID int
	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.Number,
		order.CashierID,
		order.TotalAmount,
		order.TaxAmount,
		order.DiscountAmount,
		order.PaymentMethod,
		order.PaymentReceived,
		order.ChangeAmount,
		order.Status,
		order.Notes,
	).Scan(&orderID, &order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("order number %s: %w", order.Number, ErrDuplicateOrderNumber)
		}
		return 0, &StorageError{Op: "insert order", Err: err}
	}

	for _, line := range lines {
		_, err := tx.Exec(ctx, database.InsertOrderLineSQL,
			orderID,
			line.FoodItemID,
			line.Quantity,
			line.UnitPrice,
			line.Subtotal,
			line.Notes,
		)
		if err != nil {
			return 0, &StorageError{Op: "insert order line", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &StorageError{Op: "commit", Err: err}
	}

	order.ID = orderID
	return orderID, nil
}

// OrderByNumber loads a committed order and its lines by order number.
func (r *Repository) OrderByNumber(ctx context.Context, number string) (*models.Order, []models.OrderLine, error) {
	var order models.Order
	err := r.db.QueryRow(ctx, database.GetOrderByNumberSQL, number).Scan(
		&order.ID,
		&order.Number,
		&order.CashierID,
		&order.TotalAmount,
		&order.TaxAmount,
		&order.DiscountAmount,
		&order.PaymentMethod,
		&order.PaymentReceived,
		&order.ChangeAmount,
		&order.Status,
		&order.Notes,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, &StorageError{Op: "query order", Err: err}
	}

	rows, err := r.db.Query(ctx, database.GetOrderLinesSQL, order.ID)
	if err != nil {
		return nil, nil, &StorageError{Op: "query order lines", Err: err}
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(&line.ID, &line.OrderID, &line.FoodItemID, &line.Quantity,
			&line.UnitPrice, &line.Subtotal, &line.Notes, &line.CreatedAt)
		if err != nil {
			return nil, nil, &StorageError{Op: "scan order line", Err: err}
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &StorageError{Op: "read order lines", Err: err}
	}

	return &order, lines, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
