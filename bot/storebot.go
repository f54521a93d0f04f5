package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"BazaarBot/bot/workflow"
	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
	"BazaarBot/internal/service/order"
)

// CatalogService is the storefront's view of the product catalog.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListActiveByCategory(ctx context.Context, categoryID string) ([]entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
}

type CartService interface {
	GetCart(ctx context.Context, telegramId int64) (*entity.Cart, error)
	AddProduct(ctx context.Context, telegramId int64, productID string) (*entity.Cart, error)
	Clear(ctx context.Context, telegramId int64) error
}

type OrderService interface {
	AttachReceipt(ctx context.Context, orderID string, image []byte, mimeType string) (*entity.Order, error)
	SetPaymentValidated(ctx context.Context, orderID string, approved bool) (*entity.Order, error)
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
	UserOrders(ctx context.Context, telegramId int64) ([]entity.Order, error)
	OrdersByStatus(ctx context.Context, statuses ...string) ([]entity.Order, error)
	Stats(ctx context.Context, now time.Time) (order.Stats, error)
}

type UserService interface {
	GetOrRegister(ctx context.Context, telegramId, chatId int64, language string) (*entity.User, error)
	ByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error)
	SavePhone(ctx context.Context, telegramId int64, phone string) error
	SetLanguage(ctx context.Context, telegramId int64, language string) error
	Admins(ctx context.Context) ([]entity.User, error)
}

// StoreBot is the Telegram storefront. It routes every update through
// the pending-receipt registry, then the workflow engine for the user's
// active session, and only then the stateless command handlers.
type StoreBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminChatId int64

	engine   *workflow.Engine
	receipts *workflow.ReceiptRegistry

	catalog CatalogService
	carts   CartService
	orders  OrderService
	users   UserService
}

func NewStoreBot(botName, apiKey string, adminChatId int64, log *slog.Logger) (*StoreBot, error) {
	bot := &StoreBot{
		log:         log.With(sl.Module("storebot")),
		botUsername: botName,
		adminChatId: adminChatId,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	bot.api = api

	return bot, nil
}

func (b *StoreBot) SetEngine(engine *workflow.Engine) {
	b.engine = engine
}

func (b *StoreBot) SetReceiptRegistry(receipts *workflow.ReceiptRegistry) {
	b.receipts = receipts
}

func (b *StoreBot) SetCatalogService(catalog CatalogService) {
	b.catalog = catalog
}

func (b *StoreBot) SetCartService(carts CartService) {
	b.carts = carts
}

func (b *StoreBot) SetOrderService(orders OrderService) {
	b.orders = orders
}

func (b *StoreBot) SetUserService(users UserService) {
	b.users = users
}

// Start begins polling for updates and handling them.
func (b *StoreBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", b.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("admin", b.handleAdmin))
	dispatcher.AddHandler(handlers.NewCallback(func(cq *tgbotapi.CallbackQuery) bool { return true }, b.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Photo, b.handlePhoto))
	dispatcher.AddHandler(handlers.NewMessage(message.Contact, b.handleContact))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, b.handleText))

	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	b.log.Info("store bot started", slog.String("username", b.botUsername))

	// Idle, to keep updates coming in
	updater.Idle()

	return nil
}

// DownloadPhoto fetches a photo from Telegram by file id, returning the
// raw bytes and a mime type guessed from the file extension.
func (b *StoreBot) DownloadPhoto(ctx context.Context, fileID string) ([]byte, string, error) {
	file, err := b.api.GetFile(fileID, nil)
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}

	url := file.URL(b.api, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}

	mimeType := mime.TypeByExtension(path.Ext(file.FilePath))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, nil
}
