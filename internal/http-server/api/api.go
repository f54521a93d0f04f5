package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/config"
	"BazaarBot/internal/http-server/handlers/errors"
	"BazaarBot/internal/http-server/handlers/key"
	"BazaarBot/internal/http-server/handlers/order"
	"BazaarBot/internal/http-server/handlers/product"
	"BazaarBot/internal/http-server/handlers/promo"
	"BazaarBot/internal/http-server/handlers/user"
	"BazaarBot/internal/http-server/middleware/authenticate"
	"BazaarBot/internal/http-server/middleware/timeout"
	"BazaarBot/internal/lib/sl"
	"BazaarBot/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	ws.Authenticator
	product.Core
	order.Core
	user.Core
	promo.Core
	key.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(30))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(authenticate.New(log, handler))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/products", func(r chi.Router) {
			r.Get("/", product.ListProducts(log, handler))
			r.Post("/", product.CreateProduct(log, handler))
			r.Get("/{id}", product.GetProduct(log, handler))
			r.Patch("/{id}", product.UpdateProduct(log, handler))
			r.Get("/{id}/image", product.Image(log, handler))
			r.Get("/{id}/feedback", product.Feedback(log, handler))
		})
		v1.Route("/categories", func(r chi.Router) {
			r.Get("/", product.ListCategories(log, handler))
			r.Post("/", product.CreateCategory(log, handler))
		})
		v1.Route("/orders", func(r chi.Router) {
			r.Get("/", order.ListOrders(log, handler))
			r.Get("/stats", order.Stats(log, handler))
			r.Get("/{id}", order.GetOrder(log, handler))
			r.Post("/{id}/status", order.SetStatus(log, handler))
			r.Get("/{id}/receipt", order.Receipt(log, handler))
			r.Get("/{id}/delivery", order.GetDelivery(log, handler))
			r.Post("/{id}/delivery", order.SetDelivery(log, handler))
		})
		v1.Route("/user", func(r chi.Router) {
			r.Get("/", user.ListUsers(log, handler))
			r.Get("/{telegramId}", user.GetUser(log, handler))
			r.Post("/block", user.BlockUser(log, handler))
		})
		v1.Route("/promo", func(r chi.Router) {
			r.Get("/get", promo.GetActivePromoCodes(log, handler))
			r.Post("/generate", promo.GeneratePromoCodes(log, handler))
		})
		v1.Route("/key", func(r chi.Router) {
			r.Post("/new", key.Generate(log, handler))
		})
		if hub != nil {
			v1.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
				ws.ServeWs(hub, handler, log, w, r)
			})
		}
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
