package order

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
	orderservice "BazaarBot/internal/service/order"
)

// Receipt streams the stored payment proof for manual review.
func Receipt(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("receipt download not available")
			render.JSON(w, r, response.Error("Receipt download not available"))
			return
		}

		id := chi.URLParam(r, "id")
		_, meta, reader, err := handler.OrderReceipt(id)
		if err != nil {
			if errors.Is(err, orderservice.ErrOrderNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Receipt not found"))
				return
			}
			logger.Error("order receipt", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to load receipt"))
			return
		}
		defer reader.Close()

		contentType := meta.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)

		if _, err := io.Copy(w, reader); err != nil {
			logger.Error("streaming receipt", sl.Err(err))
		}
	}
}
