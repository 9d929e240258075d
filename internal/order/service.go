package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"lilypay/internal/cart"
	"lilypay/internal/logger"
	"lilypay/internal/models"
)

// Service converts a finalized cart into a persisted order. It is the
// last line of defense for the payment gate: preconditions are
// re-validated here even though the UI blocks confirmation earlier.
type Service struct {
	store   Store
	logger  *logger.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewService creates an order commit service. The timeout bounds a
// single commit attempt against the storage layer.
func NewService(store Store, log *logger.Logger, timeout time.Duration) *Service {
	return &Service{
		store:   store,
		logger:  log,
		timeout: timeout,
		now:     time.Now,
	}
}

// Confirmation is returned to the caller after a successful commit.
type Confirmation struct {
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ChangeGiven decimal.Decimal `json:"change_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Commit persists the cart snapshot as one order plus its lines.
// Preconditions: non-empty cart and tendered >= total. On a duplicate
// order number the commit is retried once with a regenerated number.
// The caller clears the cart session after a successful commit.
func (s *Service) Commit(ctx context.Context, cashierID int, snap cart.Snapshot, method models.PaymentMethod, notes *string, requestID string) (*Confirmation, error) {
	if len(snap.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range snap.Lines {
		total = total.Add(line.Subtotal())
	}
	if snap.Tendered.LessThan(total) {
		return nil, ErrInsufficientPayment
	}
	change := snap.Tendered.Sub(total)

	order := &models.Order{
		CashierID:       cashierID,
		TotalAmount:     total,
		TaxAmount:       decimal.Zero,
		DiscountAmount:  decimal.Zero,
		PaymentMethod:   method,
		PaymentReceived: snap.Tendered,
		ChangeAmount:    change,
		Status:          models.StatusCompleted,
		Notes:           notes,
	}

	lines := make([]models.OrderLine, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		lines = append(lines, models.OrderLine{
			FoodItemID: line.Item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  line.Item.Price,
			Subtotal:   line.Subtotal(),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// One retry with a regenerated number covers the rare timestamp
	// collision; anything past that is surfaced.
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		order.Number = GenerateOrderNumber(s.now())

		_, err := s.store.CreateOrder(ctx, order, lines)
		if err == nil {
			s.logger.Info("order_committed", "Order committed", requestID, map[string]interface{}{
				"order_number": order.Number,
				"total_amount": order.TotalAmount.String(),
				"line_count":   len(lines),
			})
			return &Confirmation{
				OrderNumber: order.Number,
				TotalAmount: order.TotalAmount,
				ChangeGiven: order.ChangeAmount,
				CreatedAt:   order.CreatedAt,
			}, nil
		}

		lastErr = err
		if !errors.Is(err, ErrDuplicateOrderNumber) {
			break
		}
		s.logger.Error("order_number_collision", "Order number collided, regenerating", requestID, err, map[string]interface{}{
			"order_number": order.Number,
		})
	}

	return nil, lastErr
}

// Lookup loads a committed order and its lines by order number.
func (s *Service) Lookup(ctx context.Context, number string) (*models.Order, []models.OrderLine, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.store.OrderByNumber(ctx, number)
}
