package main

import (
	"context"
	"flag"
	"log/slog"

	"BazaarBot/bot"
	"BazaarBot/bot/workflow"
	"BazaarBot/bot/workflows/feedback"
	"BazaarBot/bot/workflows/helprequest"
	"BazaarBot/bot/workflows/orderplace"
	"BazaarBot/bot/workflows/productcreate"
	"BazaarBot/bot/workflows/productupdate"
	"BazaarBot/bot/workflows/profileedit"
	"BazaarBot/impl/core"
	"BazaarBot/internal/config"
	repository "BazaarBot/internal/database"
	"BazaarBot/internal/http-server/api"
	"BazaarBot/internal/lib/logger"
	"BazaarBot/internal/lib/sl"
	"BazaarBot/internal/service/cart"
	"BazaarBot/internal/service/catalog"
	"BazaarBot/internal/service/order"
	"BazaarBot/internal/service/user"
	"BazaarBot/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "logs", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Send-only notifier bot: errors get pushed to the operator chat.
	if conf.Telegram.Enabled && conf.Telegram.AdminChatId != 0 {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminChatId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram notifier", sl.Err(err))
		} else {
			lg = logger.SetupNotifyHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram notifier initialized")
		}
	}

	lg.Info("starting bazaarbot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}

	hub := ws.NewHub(lg)
	go hub.Run()

	ctx := context.Background()

	if db != nil {
		handler.SetRepository(db)
		handler.SetPromoRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")

		catalogService := catalog.NewCatalogService(db, lg)
		cartService := cart.NewCartService(db, lg)
		orderService := order.NewOrderService(db, hub, lg)
		userService := user.NewUserService(db, lg)

		handler.SetCatalogService(catalogService)
		handler.SetOrderService(orderService)
		handler.SetUserService(userService)

		if conf.Telegram.Enabled {
			storeBot, err := bot.NewStoreBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminChatId, lg)
			if err != nil {
				lg.Error("failed to initialize store bot", sl.Err(err))
			} else {
				store := workflow.NewMemoryStore()
				engine := workflow.NewEngine(store, lg)
				receipts := workflow.NewReceiptRegistry()

				bank := orderplace.BankDetails{
					BankName:      conf.Bank.Name,
					AccountHolder: conf.Bank.AccountHolder,
					AccountNumber: conf.Bank.AccountNumber,
					IBAN:          conf.Bank.IBAN,
				}

				engine.Register(productcreate.New(catalogService, storeBot, lg))
				engine.Register(productupdate.New(catalogService, storeBot, lg))
				engine.Register(orderplace.New(orderService, userService, cartService, receipts, bank, lg))
				engine.Register(feedback.New(catalogService, lg))
				engine.Register(profileedit.New(userService, lg))
				engine.Register(helprequest.New(conf.Telegram.AdminChatId, lg))

				storeBot.SetEngine(engine)
				storeBot.SetReceiptRegistry(receipts)
				storeBot.SetCatalogService(catalogService)
				storeBot.SetCartService(cartService)
				storeBot.SetOrderService(orderService)
				storeBot.SetUserService(userService)

				go store.RunJanitor(ctx, conf.Session.TTL, conf.Session.SweepInterval, lg)
				go storeBot.RunReceiptJanitor(ctx, conf.Session.ReceiptTTL, conf.Session.SweepInterval)

				go func() {
					if err := storeBot.Start(); err != nil {
						lg.Error("store bot error", sl.Err(err))
					}
				}()
			}
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
