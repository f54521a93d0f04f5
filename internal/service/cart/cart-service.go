package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
)

var ErrProductUnavailable = errors.New("product unavailable")

// Storage is the persistence surface the cart service needs.
type Storage interface {
	GetCart(telegramId int64) (*entity.Cart, error)
	UpsertCart(cart *entity.Cart) (*entity.Cart, error)
	DeleteCart(telegramId int64) error
	GetProduct(id string) (*entity.Product, error)
}

type Service struct {
	storage Storage
	log     *slog.Logger
}

func NewCartService(storage Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		log:     logger.With(sl.Module("cart service")),
	}
}

func (s *Service) GetCart(ctx context.Context, telegramId int64) (*entity.Cart, error) {
	cart, err := s.storage.GetCart(telegramId)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if cart == nil {
		cart = &entity.Cart{TelegramId: telegramId}
	}
	return cart, nil
}

// AddProduct puts one unit of a product into the user's cart. The price
// is snapshotted at add time.
func (s *Service) AddProduct(ctx context.Context, telegramId int64, productID string) (*entity.Cart, error) {
	product, err := s.storage.GetProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("loading product: %w", err)
	}
	if product == nil || !product.InStock() {
		return nil, ErrProductUnavailable
	}

	cart, err := s.GetCart(ctx, telegramId)
	if err != nil {
		return nil, err
	}
	cart.Add(product.ID, product.Name, product.Price, 1)

	return s.storage.UpsertCart(cart)
}

func (s *Service) RemoveProduct(ctx context.Context, telegramId int64, productID string) (*entity.Cart, error) {
	cart, err := s.GetCart(ctx, telegramId)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)

	return s.storage.UpsertCart(cart)
}

func (s *Service) Clear(ctx context.Context, telegramId int64) error {
	return s.storage.DeleteCart(telegramId)
}
