package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"BazaarBot/entity"
)

type storageMock struct {
	carts    map[int64]*entity.Cart
	products map[string]*entity.Product
	deleted  bool
}

func newStorageMock() *storageMock {
	return &storageMock{
		carts:    make(map[int64]*entity.Cart),
		products: make(map[string]*entity.Product),
	}
}

func (m *storageMock) GetCart(telegramId int64) (*entity.Cart, error) {
	return m.carts[telegramId], nil
}

func (m *storageMock) UpsertCart(cart *entity.Cart) (*entity.Cart, error) {
	m.carts[cart.TelegramId] = cart
	return cart, nil
}

func (m *storageMock) DeleteCart(telegramId int64) error {
	m.deleted = true
	delete(m.carts, telegramId)
	return nil
}

func (m *storageMock) GetProduct(id string) (*entity.Product, error) {
	return m.products[id], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetCartReturnsEmptyCartForNewUser(t *testing.T) {
	svc := NewCartService(newStorageMock(), discardLogger())

	cart, err := svc.GetCart(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Equal(t, int64(10), cart.TelegramId)
	require.True(t, cart.IsEmpty())
}

func TestAddProductSnapshotsPrice(t *testing.T) {
	storage := newStorageMock()
	storage.products["p1"] = &entity.Product{
		ID: "p1", Name: "Saffron", Price: 9000, Stock: 3, Active: true,
	}
	svc := NewCartService(storage, discardLogger())

	cart, err := svc.AddProduct(context.Background(), 10, "p1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "Saffron", cart.Items[0].Name)
	require.Equal(t, int64(9000), cart.Items[0].Price)
	require.Equal(t, 1, cart.Items[0].Quantity)

	// A later price change does not touch the snapshot already in the cart.
	storage.products["p1"].Price = 12000
	cart, err = svc.AddProduct(context.Background(), 10, "p1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.Equal(t, int64(9000), cart.Items[0].Price)
}

func TestAddProductUnavailable(t *testing.T) {
	storage := newStorageMock()
	storage.products["sold-out"] = &entity.Product{
		ID: "sold-out", Name: "Gone", Price: 100, Stock: 0, Active: true,
	}
	storage.products["inactive"] = &entity.Product{
		ID: "inactive", Name: "Hidden", Price: 100, Stock: 5, Active: false,
	}
	svc := NewCartService(storage, discardLogger())

	_, err := svc.AddProduct(context.Background(), 10, "missing")
	require.ErrorIs(t, err, ErrProductUnavailable)

	_, err = svc.AddProduct(context.Background(), 10, "sold-out")
	require.ErrorIs(t, err, ErrProductUnavailable)

	_, err = svc.AddProduct(context.Background(), 10, "inactive")
	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestRemoveProduct(t *testing.T) {
	storage := newStorageMock()
	storage.carts[10] = &entity.Cart{
		TelegramId: 10,
		Items: []entity.CartItem{
			{ProductID: "p1", Name: "Tea", Price: 1000, Quantity: 2},
			{ProductID: "p2", Name: "Dates", Price: 500, Quantity: 1},
		},
	}
	svc := NewCartService(storage, discardLogger())

	cart, err := svc.RemoveProduct(context.Background(), 10, "p1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "p2", cart.Items[0].ProductID)
	require.Equal(t, int64(500), cart.Total())
}

func TestClear(t *testing.T) {
	storage := newStorageMock()
	storage.carts[10] = &entity.Cart{
		TelegramId: 10,
		Items:      []entity.CartItem{{ProductID: "p1", Quantity: 1}},
	}
	svc := NewCartService(storage, discardLogger())

	require.NoError(t, svc.Clear(context.Background(), 10))
	require.True(t, storage.deleted)

	cart, err := svc.GetCart(context.Background(), 10)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}
