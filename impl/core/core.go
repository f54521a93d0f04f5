package core

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
	"BazaarBot/internal/service/order"
)

type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)
}

type CatalogService interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListActiveByCategory(ctx context.Context, categoryID string) ([]entity.Product, error)
	CreateProduct(ctx context.Context, draft entity.ProductDraft) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, draft entity.ProductDraft) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateCategory(ctx context.Context, name, nameEn string) (*entity.Category, error)
	ProductImage(ctx context.Context, productID string) (string, entity.FileMetadata, io.ReadCloser, error)
	ProductFeedback(ctx context.Context, productID string) ([]entity.Feedback, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
	OrdersByStatus(ctx context.Context, statuses ...string) ([]entity.Order, error)
	UserOrders(ctx context.Context, telegramId int64) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*entity.Order, error)
	Receipt(ctx context.Context, orderID string) (string, entity.FileMetadata, io.ReadCloser, error)
	SetDelivery(ctx context.Context, orderID string, lat, lon float64, details, status string) (*entity.Delivery, error)
	Delivery(ctx context.Context, orderID string) (*entity.Delivery, error)
	Stats(ctx context.Context, now time.Time) (order.Stats, error)
}

type UserService interface {
	ByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error)
	Users(ctx context.Context) ([]entity.User, error)
	Block(ctx context.Context, telegramId int64, blocked bool) error
}

// Core bridges the REST handlers to the domain services. It also owns
// API key authentication for the back-office surface.
type Core struct {
	repo    Repository
	catalog CatalogService
	orders  OrderService
	users   UserService
	promo   PromoRepository
	authKey string

	mu   sync.RWMutex
	keys map[string]string

	log *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log:  log.With(sl.Module("core")),
		keys: make(map[string]string),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetCatalogService(catalog CatalogService) {
	c.catalog = catalog
}

func (c *Core) SetOrderService(orders OrderService) {
	c.orders = orders
}

func (c *Core) SetUserService(users UserService) {
	c.users = users
}
