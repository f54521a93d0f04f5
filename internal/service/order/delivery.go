package order

import (
	"context"
	"fmt"
	"log/slog"

	"BazaarBot/entity"
)

// SetDelivery records or updates the shipment details of an order.
// An existing record for the order keeps its id and creation time.
func (s *Service) SetDelivery(ctx context.Context, orderID string, lat, lon float64, details, status string) (*entity.Delivery, error) {
	ord, err := s.storage.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	delivery, err := s.storage.GetDeliveryByOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("loading delivery: %w", err)
	}
	if delivery == nil {
		delivery = entity.NewDelivery(orderID, lat, lon, details)
	} else {
		delivery.Latitude = lat
		delivery.Longitude = lon
		delivery.AddressDetails = details
	}
	if status != "" {
		delivery.Status = status
	}

	if err := s.storage.UpsertDelivery(delivery); err != nil {
		return nil, fmt.Errorf("saving delivery: %w", err)
	}

	s.log.Info("delivery updated",
		slog.String("order_id", orderID),
		slog.String("status", delivery.Status),
	)
	return delivery, nil
}

// Delivery returns the shipment record of an order, or nil when the
// order has not been shipped yet.
func (s *Service) Delivery(ctx context.Context, orderID string) (*entity.Delivery, error) {
	return s.storage.GetDeliveryByOrder(orderID)
}
