package order

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func ListOrders(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("order listing not available")
			render.JSON(w, r, response.Error("Order listing not available"))
			return
		}

		var statuses []string
		if raw := r.URL.Query().Get("status"); raw != "" {
			statuses = strings.Split(raw, ",")
		}

		if raw := r.URL.Query().Get("telegram_id"); raw != "" {
			telegramId, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				render.JSON(w, r, response.Error("Invalid telegram_id"))
				return
			}
			orders, err := handler.UserOrders(telegramId)
			if err != nil {
				logger.Error("user orders", sl.Err(err))
				render.JSON(w, r, response.Error("Failed to list orders"))
				return
			}
			render.JSON(w, r, orders)
			return
		}

		orders, err := handler.ListOrders(statuses)
		if err != nil {
			logger.Error("list orders", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list orders"))
			return
		}
		logger.Debug("list orders", slog.Int("count", len(orders)))

		render.JSON(w, r, orders)
	}
}

func GetOrder(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("order lookup not available")
			render.JSON(w, r, response.Error("Order lookup not available"))
			return
		}

		id := chi.URLParam(r, "id")
		found, err := handler.GetOrder(id)
		if err != nil {
			logger.Error("get order", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Order not found"))
			return
		}

		render.JSON(w, r, found)
	}
}
