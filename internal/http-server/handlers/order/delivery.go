package order

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
	orderservice "BazaarBot/internal/service/order"
)

type DeliveryRequest struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AddressDetails string  `json:"address_details"`
	Status         string  `json:"status,omitempty"`
}

func SetDelivery(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("delivery update not available")
			render.JSON(w, r, response.Error("Delivery update not available"))
			return
		}

		id := chi.URLParam(r, "id")

		var req DeliveryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		delivery, err := handler.SetDelivery(id, req.Latitude, req.Longitude, req.AddressDetails, req.Status)
		if err != nil {
			if errors.Is(err, orderservice.ErrOrderNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Order not found"))
				return
			}
			logger.Error("set delivery", slog.String("order_id", id), sl.Err(err))
			render.JSON(w, r, response.Error("Failed to set delivery"))
			return
		}
		logger.Debug("delivery updated", slog.String("order_id", id))

		render.JSON(w, r, delivery)
	}
}

func GetDelivery(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("delivery lookup not available")
			render.JSON(w, r, response.Error("Delivery lookup not available"))
			return
		}

		id := chi.URLParam(r, "id")
		delivery, err := handler.GetDelivery(id)
		if err != nil {
			logger.Error("get delivery", slog.String("order_id", id), sl.Err(err))
			render.JSON(w, r, response.Error("Failed to get delivery"))
			return
		}
		if delivery == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Delivery not found"))
			return
		}

		render.JSON(w, r, delivery)
	}
}
