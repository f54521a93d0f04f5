package order

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

type SetStatusRequest struct {
	Status string `json:"status"`
}

func SetStatus(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("order status update not available")
			render.JSON(w, r, response.Error("Order status update not available"))
			return
		}

		var req SetStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		id := chi.URLParam(r, "id")
		logger = logger.With(
			slog.String("order_id", id),
			slog.String("status", req.Status),
		)

		updated, err := handler.SetOrderStatus(id, req.Status)
		if err != nil {
			logger.Error("set order status", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Status update failed: %v", err)))
			return
		}
		logger.Debug("order status updated")

		render.JSON(w, r, updated)
	}
}
