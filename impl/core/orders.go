package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"BazaarBot/entity"
	"BazaarBot/internal/service/order"
)

func (c *Core) GetOrder(id string) (*entity.Order, error) {
	if c.orders == nil {
		return nil, fmt.Errorf("order service not initialized")
	}
	return c.orders.GetOrder(context.Background(), id)
}

func (c *Core) ListOrders(statuses []string) ([]entity.Order, error) {
	if c.orders == nil {
		return nil, fmt.Errorf("order service not initialized")
	}
	if len(statuses) == 0 {
		statuses = []string{
			entity.OrderPending, entity.OrderPaid,
			entity.OrderPaymentValidated, entity.OrderPaymentInvalidated,
			entity.OrderShipped, entity.OrderDelivered, entity.OrderCancelled,
		}
	}
	return c.orders.OrdersByStatus(context.Background(), statuses...)
}

func (c *Core) UserOrders(telegramId int64) ([]entity.Order, error) {
	if c.orders == nil {
		return nil, fmt.Errorf("order service not initialized")
	}
	return c.orders.UserOrders(context.Background(), telegramId)
}

func (c *Core) SetOrderStatus(id, status string) (*entity.Order, error) {
	if c.orders == nil {
		return nil, fmt.Errorf("order service not initialized")
	}
	return c.orders.UpdateStatus(context.Background(), id, status)
}

func (c *Core) OrderReceipt(id string) (string, entity.FileMetadata, io.ReadCloser, error) {
	if c.orders == nil {
		return "", entity.FileMetadata{}, nil, fmt.Errorf("order service not initialized")
	}
	return c.orders.Receipt(context.Background(), id)
}

func (c *Core) SetDelivery(orderID string, lat, lon float64, details, status string) (*entity.Delivery, error) {
	if c.orders == nil {
		return nil, fmt.Errorf("order service not initialized")
	}
	return c.orders.SetDelivery(context.Background(), orderID, lat, lon, details, status)
}

func (c *Core) GetDelivery(orderID string) (*entity.Delivery, error) {
	if c.orders == nil {
		return nil, fmt.Errorf("order service not initialized")
	}
	return c.orders.Delivery(context.Background(), orderID)
}

func (c *Core) OrderStats() (order.Stats, error) {
	if c.orders == nil {
		return order.Stats{}, fmt.Errorf("order service not initialized")
	}
	return c.orders.Stats(context.Background(), time.Now())
}
