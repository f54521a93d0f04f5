package product

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
	"BazaarBot/internal/service/catalog"
)

// Image streams the stored product photo as-is, bypassing the JSON
// content type set by the router.
func Image(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("product image not available")
			render.JSON(w, r, response.Error("Product image not available"))
			return
		}

		id := chi.URLParam(r, "id")
		_, meta, reader, err := handler.ProductImage(id)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Product image not found"))
				return
			}
			logger.Error("product image", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to load product image"))
			return
		}
		defer reader.Close()

		contentType := meta.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)

		if _, err := io.Copy(w, reader); err != nil {
			logger.Error("streaming product image", sl.Err(err))
		}
	}
}
