package order

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
)

// Storage is the persistence surface the order service needs.
type Storage interface {
	GetUserByTelegramId(telegramId int64) (*entity.User, error)
	GetCart(telegramId int64) (*entity.Cart, error)
	DeleteCart(telegramId int64) error
	GetProduct(id string) (*entity.Product, error)
	DecrementStock(productID string, quantity int) (bool, error)
	IncrementStock(productID string, quantity int) error
	NextOrderNumber() (int64, error)
	InsertOrder(order *entity.Order) error
	GetOrder(id string) (*entity.Order, error)
	SetOrderStatus(id, status string) error
	SetOrderReceipt(id, fileID, mimeType string) error
	OrdersByUser(telegramId int64) ([]entity.Order, error)
	OrdersByStatus(statuses ...string) ([]entity.Order, error)
	OrdersSince(since time.Time, statuses ...string) ([]entity.Order, error)
	UpsertDelivery(delivery *entity.Delivery) error
	GetDeliveryByOrder(orderID string) (*entity.Delivery, error)
	CountUsers() (int64, error)
	UploadFile(filename string, reader io.Reader, meta entity.FileMetadata) (primitive.ObjectID, int64, error)
	DownloadFile(fileID primitive.ObjectID) (string, entity.FileMetadata, io.ReadCloser, error)
}

// Event is a lifecycle notification published on every order mutation.
type Event struct {
	Type    string    `json:"type"`
	OrderID string    `json:"order_id"`
	Number  int64     `json:"number"`
	Status  string    `json:"status"`
	Total   int64     `json:"total"`
	At      time.Time `json:"at"`
}

const (
	EventPlaced          = "order.placed"
	EventReceiptAttached = "order.receipt_attached"
	EventStatusChanged   = "order.status_changed"
)

// EventSink receives order events. The websocket hub implements it; a
// nil sink disables publishing.
type EventSink interface {
	Publish(event Event)
}

type Service struct {
	storage Storage
	events  EventSink
	log     *slog.Logger
}

func NewOrderService(storage Storage, events EventSink, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		events:  events,
		log:     logger.With(sl.Module("order service")),
	}
}

// PlaceOrder turns the user's cart into a pending order. Stock is
// reserved per item with a conditional decrement; if any later item or
// the insert itself fails, the already reserved units are returned.
func (s *Service) PlaceOrder(ctx context.Context, telegramId int64) (*entity.Order, error) {
	user, err := s.storage.GetUserByTelegramId(telegramId)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	cart, err := s.storage.GetCart(telegramId)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	var reserved []entity.CartItem
	for _, item := range cart.Items {
		product, err := s.storage.GetProduct(item.ProductID)
		if err != nil {
			s.releaseStock(reserved)
			return nil, fmt.Errorf("loading product: %w", err)
		}
		if product == nil || !product.Active {
			s.releaseStock(reserved)
			return nil, &InsufficientStockError{ProductName: item.Name}
		}

		ok, err := s.storage.DecrementStock(item.ProductID, item.Quantity)
		if err != nil {
			s.releaseStock(reserved)
			return nil, fmt.Errorf("reserving stock: %w", err)
		}
		if !ok {
			s.releaseStock(reserved)
			return nil, &InsufficientStockError{ProductName: product.Name}
		}
		reserved = append(reserved, item)
	}

	number, err := s.storage.NextOrderNumber()
	if err != nil {
		s.releaseStock(reserved)
		return nil, fmt.Errorf("order number: %w", err)
	}

	order := entity.NewOrder(user.UUID, telegramId)
	order.Number = number
	order.TotalAmount = cart.Total()
	order.TrackingNumber = entity.MakeTrackingNumber(number, time.Now())
	order.Items = make([]entity.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		order.Items[i] = entity.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	if err := s.storage.InsertOrder(order); err != nil {
		s.releaseStock(reserved)
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	if err := s.storage.DeleteCart(telegramId); err != nil {
		s.log.Error("clearing cart after order", slog.Int64("user_id", telegramId), sl.Err(err))
	}

	s.publish(Event{
		Type:    EventPlaced,
		OrderID: order.ID,
		Number:  order.Number,
		Status:  order.Status,
		Total:   order.TotalAmount,
		At:      time.Now(),
	})

	return order, nil
}

// releaseStock returns reserved units after a failed placement.
func (s *Service) releaseStock(items []entity.CartItem) {
	for _, item := range items {
		if err := s.storage.IncrementStock(item.ProductID, item.Quantity); err != nil {
			s.log.Error("releasing stock",
				slog.String("product_id", item.ProductID),
				slog.Int("quantity", item.Quantity),
				sl.Err(err),
			)
		}
	}
}

// AttachReceipt stores a payment proof and moves the order to paid.
func (s *Service) AttachReceipt(ctx context.Context, orderID string, image []byte, mimeType string) (*entity.Order, error) {
	order, err := s.storage.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	meta := entity.FileMetadata{
		Kind:        entity.FileKindReceipt,
		OwnerID:     order.ID,
		ContentType: mimeType,
		UploadedAt:  time.Now(),
	}
	fileID, _, err := s.storage.UploadFile("receipt-"+order.ID, bytes.NewReader(image), meta)
	if err != nil {
		return nil, fmt.Errorf("storing receipt: %w", err)
	}

	if err := s.storage.SetOrderReceipt(order.ID, fileID.Hex(), mimeType); err != nil {
		return nil, fmt.Errorf("attaching receipt: %w", err)
	}

	order.ReceiptFileID = fileID.Hex()
	order.ReceiptMimeType = mimeType
	order.Status = entity.OrderPaid

	s.publish(Event{
		Type:    EventReceiptAttached,
		OrderID: order.ID,
		Number:  order.Number,
		Status:  order.Status,
		Total:   order.TotalAmount,
		At:      time.Now(),
	})

	return order, nil
}

// SetPaymentValidated records the admin's verdict on a receipt.
func (s *Service) SetPaymentValidated(ctx context.Context, orderID string, approved bool) (*entity.Order, error) {
	status := entity.OrderPaymentValidated
	if !approved {
		status = entity.OrderPaymentInvalidated
	}
	return s.UpdateStatus(ctx, orderID, status)
}

var validStatuses = map[string]bool{
	entity.OrderPending:            true,
	entity.OrderPaid:               true,
	entity.OrderPaymentValidated:   true,
	entity.OrderPaymentInvalidated: true,
	entity.OrderShipped:            true,
	entity.OrderDelivered:          true,
	entity.OrderCancelled:          true,
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*entity.Order, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	order, err := s.storage.GetOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.storage.SetOrderStatus(orderID, status); err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	order.Status = status

	s.publish(Event{
		Type:    EventStatusChanged,
		OrderID: order.ID,
		Number:  order.Number,
		Status:  status,
		Total:   order.TotalAmount,
		At:      time.Now(),
	})

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := s.storage.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) UserOrders(ctx context.Context, telegramId int64) ([]entity.Order, error) {
	return s.storage.OrdersByUser(telegramId)
}

func (s *Service) OrdersByStatus(ctx context.Context, statuses ...string) ([]entity.Order, error) {
	return s.storage.OrdersByStatus(statuses...)
}

// Receipt streams a stored payment proof.
func (s *Service) Receipt(ctx context.Context, orderID string) (string, entity.FileMetadata, io.ReadCloser, error) {
	order, err := s.storage.GetOrder(orderID)
	if err != nil {
		return "", entity.FileMetadata{}, nil, err
	}
	if order == nil || order.ReceiptFileID == "" {
		return "", entity.FileMetadata{}, nil, ErrOrderNotFound
	}

	fileID, err := primitive.ObjectIDFromHex(order.ReceiptFileID)
	if err != nil {
		return "", entity.FileMetadata{}, nil, fmt.Errorf("receipt file id: %w", err)
	}
	return s.storage.DownloadFile(fileID)
}

func (s *Service) publish(event Event) {
	if s.events != nil {
		s.events.Publish(event)
	}
}
