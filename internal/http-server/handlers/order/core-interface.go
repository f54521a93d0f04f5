package order

import (
	"io"

	"BazaarBot/entity"
	orderservice "BazaarBot/internal/service/order"
)

type Core interface {
	GetOrder(id string) (*entity.Order, error)
	ListOrders(statuses []string) ([]entity.Order, error)
	UserOrders(telegramId int64) ([]entity.Order, error)
	SetOrderStatus(id, status string) (*entity.Order, error)
	OrderReceipt(id string) (string, entity.FileMetadata, io.ReadCloser, error)
	SetDelivery(orderID string, lat, lon float64, details, status string) (*entity.Delivery, error)
	GetDelivery(orderID string) (*entity.Delivery, error)
	OrderStats() (orderservice.Stats, error)
}
