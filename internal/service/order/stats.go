package order

import (
	"context"
	"fmt"
	"time"

	"BazaarBot/entity"
)

// Stats is the back-office revenue snapshot. Revenue counts only orders
// whose payment was validated.
type Stats struct {
	TotalOrders   int   `json:"total_orders"`
	PendingOrders int   `json:"pending_orders"`
	MonthRevenue  int64 `json:"month_revenue"`
	YearRevenue   int64 `json:"year_revenue"`
	TotalUsers    int64 `json:"total_users"`
}

var revenueStatuses = []string{
	entity.OrderPaymentValidated,
	entity.OrderShipped,
	entity.OrderDelivered,
}

func (s *Service) Stats(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats

	all, err := s.storage.OrdersByStatus(
		entity.OrderPending, entity.OrderPaid,
		entity.OrderPaymentValidated, entity.OrderPaymentInvalidated,
		entity.OrderShipped, entity.OrderDelivered, entity.OrderCancelled,
	)
	if err != nil {
		return stats, fmt.Errorf("loading orders: %w", err)
	}
	stats.TotalOrders = len(all)
	for _, o := range all {
		if o.Status == entity.OrderPending || o.Status == entity.OrderPaid {
			stats.PendingOrders++
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthOrders, err := s.storage.OrdersSince(monthStart, revenueStatuses...)
	if err != nil {
		return stats, fmt.Errorf("loading month orders: %w", err)
	}
	for _, o := range monthOrders {
		stats.MonthRevenue += o.TotalAmount
	}

	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	yearOrders, err := s.storage.OrdersSince(yearStart, revenueStatuses...)
	if err != nil {
		return stats, fmt.Errorf("loading year orders: %w", err)
	}
	for _, o := range yearOrders {
		stats.YearRevenue += o.TotalAmount
	}

	users, err := s.storage.CountUsers()
	if err != nil {
		return stats, fmt.Errorf("counting users: %w", err)
	}
	stats.TotalUsers = users

	return stats, nil
}
