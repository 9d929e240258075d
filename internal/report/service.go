package report

import (
	"context"
	"errors"
	"fmt"

	"lilypay/internal/logger"
	"lilypay/internal/models"
)

// ErrInvalidLimit is returned when a caller asks for a non-positive
// number of recent orders.
var ErrInvalidLimit = errors.New("report: limit must be a positive integer")

// Service provides read-only aggregations over persisted orders.
type Service struct {
	store        Store
	logger       *logger.Logger
	defaultLimit int
}

// NewService creates a reporting service. defaultLimit bounds the recent
// orders listing when the caller does not specify one.
func NewService(store Store, log *logger.Logger, defaultLimit int) *Service {
	return &Service{
		store:        store,
		logger:       log,
		defaultLimit: defaultLimit,
	}
}

// RecentOrders lists the limit most recently created orders. A zero
// limit means "not specified" and falls back to the configured default;
// a negative limit is rejected.
func (s *Service) RecentOrders(ctx context.Context, limit int, requestID string) ([]models.OrderSummary, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if limit == 0 {
		limit = s.defaultLimit
	}

	summaries, err := s.store.RecentOrders(ctx, limit)
	if err != nil {
		s.logger.Error("recent_orders_failed", "Failed to list recent orders", requestID, err, nil)
		return nil, err
	}
	return summaries, nil
}

// DailySales summarizes completed orders per calendar date, split by
// payment method, newest date first.
func (s *Service) DailySales(ctx context.Context, requestID string) ([]models.DailySales, error) {
	days, err := s.store.DailySales(ctx)
	if err != nil {
		s.logger.Error("daily_sales_failed", "Failed to compute daily sales", requestID, err, nil)
		return nil, err
	}
	return days, nil
}
