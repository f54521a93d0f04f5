package order

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"BazaarBot/entity"
)

// storageMock implements Storage with overridable funcs and records the
// stock movements the service makes.
type storageMock struct {
	user      *entity.User
	cart      *entity.Cart
	products  map[string]*entity.Product
	stock     map[string]int
	order     *entity.Order
	ordersAll []entity.Order
	since     map[string][]entity.Order

	nextNumber    int64
	nextNumberErr error
	insertErr     error
	decrementErr  error

	inserted    *entity.Order
	cartDeleted bool
	increments  map[string]int
	setStatus   string
	receiptFile string
	receiptMime string
}

func newStorageMock() *storageMock {
	return &storageMock{
		products:   make(map[string]*entity.Product),
		stock:      make(map[string]int),
		since:      make(map[string][]entity.Order),
		increments: make(map[string]int),
		nextNumber: 1001,
	}
}

func (m *storageMock) GetUserByTelegramId(int64) (*entity.User, error) { return m.user, nil }
func (m *storageMock) GetCart(int64) (*entity.Cart, error)             { return m.cart, nil }

func (m *storageMock) DeleteCart(int64) error {
	m.cartDeleted = true
	return nil
}

func (m *storageMock) GetProduct(id string) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *storageMock) DecrementStock(productID string, quantity int) (bool, error) {
	if m.decrementErr != nil {
		return false, m.decrementErr
	}
	if m.stock[productID] < quantity {
		return false, nil
	}
	m.stock[productID] -= quantity
	return true, nil
}

func (m *storageMock) IncrementStock(productID string, quantity int) error {
	m.increments[productID] += quantity
	return nil
}

func (m *storageMock) NextOrderNumber() (int64, error) {
	return m.nextNumber, m.nextNumberErr
}

func (m *storageMock) InsertOrder(order *entity.Order) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = order
	return nil
}

func (m *storageMock) GetOrder(string) (*entity.Order, error) { return m.order, nil }

func (m *storageMock) SetOrderStatus(_, status string) error {
	m.setStatus = status
	return nil
}

func (m *storageMock) SetOrderReceipt(_, fileID, mimeType string) error {
	m.receiptFile = fileID
	m.receiptMime = mimeType
	return nil
}

func (m *storageMock) OrdersByUser(int64) ([]entity.Order, error) { return nil, nil }

func (m *storageMock) OrdersByStatus(...string) ([]entity.Order, error) {
	return m.ordersAll, nil
}

func (m *storageMock) OrdersSince(since time.Time, _ ...string) ([]entity.Order, error) {
	return m.since[since.Format("2006-01")], nil
}

func (m *storageMock) UpsertDelivery(*entity.Delivery) error { return nil }

func (m *storageMock) GetDeliveryByOrder(string) (*entity.Delivery, error) { return nil, nil }

func (m *storageMock) CountUsers() (int64, error) { return 7, nil }

func (m *storageMock) UploadFile(string, io.Reader, entity.FileMetadata) (primitive.ObjectID, int64, error) {
	return primitive.NewObjectID(), 0, nil
}

func (m *storageMock) DownloadFile(primitive.ObjectID) (string, entity.FileMetadata, io.ReadCloser, error) {
	return "", entity.FileMetadata{}, nil, nil
}

type sinkMock struct {
	events []Event
}

func (s *sinkMock) Publish(event Event) { s.events = append(s.events, event) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buyer() *entity.User {
	return &entity.User{UUID: "u-1", TelegramId: 10, ChatId: 10}
}

func cartOf(items ...entity.CartItem) *entity.Cart {
	return &entity.Cart{TelegramId: 10, Items: items}
}

func activeProduct(id string) *entity.Product {
	return &entity.Product{ID: id, Name: "Product " + id, Price: 1000, Active: true}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	storage := newStorageMock()
	storage.user = buyer()
	storage.cart = cartOf(
		entity.CartItem{ProductID: "p1", Name: "Tea", Price: 1000, Quantity: 2},
		entity.CartItem{ProductID: "p2", Name: "Dates", Price: 500, Quantity: 1},
	)
	storage.products["p1"] = activeProduct("p1")
	storage.products["p2"] = activeProduct("p2")
	storage.stock["p1"] = 5
	storage.stock["p2"] = 5

	sink := &sinkMock{}
	svc := NewOrderService(storage, sink, discardLogger())

	order, err := svc.PlaceOrder(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Equal(t, int64(1001), order.Number)
	require.Equal(t, entity.OrderPending, order.Status)
	require.Equal(t, int64(2500), order.TotalAmount)
	require.Len(t, order.Items, 2)
	require.True(t, strings.HasPrefix(order.TrackingNumber, "TRK"))
	require.True(t, strings.HasSuffix(order.TrackingNumber, "1001"))

	require.Equal(t, 3, storage.stock["p1"])
	require.Equal(t, 4, storage.stock["p2"])
	require.True(t, storage.cartDeleted)
	require.Same(t, order, storage.inserted)

	require.Len(t, sink.events, 1)
	require.Equal(t, EventPlaced, sink.events[0].Type)
	require.Equal(t, order.ID, sink.events[0].OrderID)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	storage := newStorageMock()
	storage.user = buyer()
	storage.cart = cartOf()

	svc := NewOrderService(storage, nil, discardLogger())

	_, err := svc.PlaceOrder(context.Background(), 10)
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	storage := newStorageMock()

	svc := NewOrderService(storage, nil, discardLogger())

	_, err := svc.PlaceOrder(context.Background(), 10)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestPlaceOrderInsufficientStockReleasesReserved(t *testing.T) {
	storage := newStorageMock()
	storage.user = buyer()
	storage.cart = cartOf(
		entity.CartItem{ProductID: "p1", Name: "Tea", Price: 1000, Quantity: 2},
		entity.CartItem{ProductID: "p2", Name: "Dates", Price: 500, Quantity: 3},
	)
	storage.products["p1"] = activeProduct("p1")
	storage.products["p2"] = activeProduct("p2")
	storage.stock["p1"] = 5
	storage.stock["p2"] = 1

	svc := NewOrderService(storage, nil, discardLogger())

	_, err := svc.PlaceOrder(context.Background(), 10)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Product p2", stockErr.ProductName)

	// The first item's reservation is rolled back, the second never held.
	require.Equal(t, 2, storage.increments["p1"])
	require.Equal(t, 0, storage.increments["p2"])
	require.Nil(t, storage.inserted)
	require.False(t, storage.cartDeleted)
}

func TestPlaceOrderInactiveProduct(t *testing.T) {
	storage := newStorageMock()
	storage.user = buyer()
	storage.cart = cartOf(entity.CartItem{ProductID: "p1", Name: "Tea", Price: 1000, Quantity: 1})
	gone := activeProduct("p1")
	gone.Active = false
	storage.products["p1"] = gone
	storage.stock["p1"] = 5

	svc := NewOrderService(storage, nil, discardLogger())

	_, err := svc.PlaceOrder(context.Background(), 10)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, 5, storage.stock["p1"])
}

func TestPlaceOrderInsertFailureReleasesAll(t *testing.T) {
	storage := newStorageMock()
	storage.user = buyer()
	storage.cart = cartOf(
		entity.CartItem{ProductID: "p1", Name: "Tea", Price: 1000, Quantity: 2},
		entity.CartItem{ProductID: "p2", Name: "Dates", Price: 500, Quantity: 1},
	)
	storage.products["p1"] = activeProduct("p1")
	storage.products["p2"] = activeProduct("p2")
	storage.stock["p1"] = 5
	storage.stock["p2"] = 5
	storage.insertErr = errors.New("write conflict")

	svc := NewOrderService(storage, nil, discardLogger())

	_, err := svc.PlaceOrder(context.Background(), 10)
	require.Error(t, err)
	require.Equal(t, 2, storage.increments["p1"])
	require.Equal(t, 1, storage.increments["p2"])
	require.False(t, storage.cartDeleted)
}

func TestAttachReceiptMovesOrderToPaid(t *testing.T) {
	storage := newStorageMock()
	ord := entity.NewOrder("u-1", 10)
	ord.Number = 1001
	storage.order = ord

	sink := &sinkMock{}
	svc := NewOrderService(storage, sink, discardLogger())

	got, err := svc.AttachReceipt(context.Background(), ord.ID, []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, entity.OrderPaid, got.Status)
	require.NotEmpty(t, got.ReceiptFileID)
	require.Equal(t, "image/jpeg", got.ReceiptMimeType)
	require.Equal(t, got.ReceiptFileID, storage.receiptFile)

	require.Len(t, sink.events, 1)
	require.Equal(t, EventReceiptAttached, sink.events[0].Type)
}

func TestAttachReceiptUnknownOrder(t *testing.T) {
	svc := NewOrderService(newStorageMock(), nil, discardLogger())

	_, err := svc.AttachReceipt(context.Background(), "nope", nil, "image/jpeg")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetPaymentValidated(t *testing.T) {
	storage := newStorageMock()
	storage.order = entity.NewOrder("u-1", 10)

	svc := NewOrderService(storage, nil, discardLogger())

	got, err := svc.SetPaymentValidated(context.Background(), storage.order.ID, true)
	require.NoError(t, err)
	require.Equal(t, entity.OrderPaymentValidated, got.Status)

	got, err = svc.SetPaymentValidated(context.Background(), storage.order.ID, false)
	require.NoError(t, err)
	require.Equal(t, entity.OrderPaymentInvalidated, got.Status)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	storage := newStorageMock()
	storage.order = entity.NewOrder("u-1", 10)

	svc := NewOrderService(storage, nil, discardLogger())

	_, err := svc.UpdateStatus(context.Background(), storage.order.ID, "teleported")
	require.Error(t, err)
	require.Empty(t, storage.setStatus)
}

func TestUpdateStatusPublishesEvent(t *testing.T) {
	storage := newStorageMock()
	storage.order = entity.NewOrder("u-1", 10)

	sink := &sinkMock{}
	svc := NewOrderService(storage, sink, discardLogger())

	got, err := svc.UpdateStatus(context.Background(), storage.order.ID, entity.OrderShipped)
	require.NoError(t, err)
	require.Equal(t, entity.OrderShipped, got.Status)
	require.Equal(t, entity.OrderShipped, storage.setStatus)

	require.Len(t, sink.events, 1)
	require.Equal(t, EventStatusChanged, sink.events[0].Type)
	require.Equal(t, entity.OrderShipped, sink.events[0].Status)
}

func TestStats(t *testing.T) {
	storage := newStorageMock()
	storage.ordersAll = []entity.Order{
		{Status: entity.OrderPending},
		{Status: entity.OrderPaid},
		{Status: entity.OrderPaymentValidated},
		{Status: entity.OrderDelivered},
		{Status: entity.OrderCancelled},
	}

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	storage.since["2026-03"] = []entity.Order{
		{Status: entity.OrderPaymentValidated, TotalAmount: 3000},
	}
	storage.since["2026-01"] = []entity.Order{
		{Status: entity.OrderPaymentValidated, TotalAmount: 3000},
		{Status: entity.OrderDelivered, TotalAmount: 7000},
	}

	svc := NewOrderService(storage, nil, discardLogger())

	stats, err := svc.Stats(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalOrders)
	require.Equal(t, 2, stats.PendingOrders)
	require.Equal(t, int64(3000), stats.MonthRevenue)
	require.Equal(t, int64(10000), stats.YearRevenue)
	require.Equal(t, int64(7), stats.TotalUsers)
}
