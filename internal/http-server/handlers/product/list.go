package product

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func ListProducts(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("product listing not available")
			render.JSON(w, r, response.Error("Product listing not available"))
			return
		}

		categoryID := r.URL.Query().Get("category")

		products, err := handler.ListProducts(categoryID)
		if err != nil {
			logger.Error("list products", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list products"))
			return
		}
		logger.Debug("list products", slog.Int("count", len(products)))

		render.JSON(w, r, products)
	}
}

func GetProduct(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("product lookup not available")
			render.JSON(w, r, response.Error("Product lookup not available"))
			return
		}

		id := chi.URLParam(r, "id")
		product, err := handler.GetProduct(id)
		if err != nil {
			logger.Error("get product", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to get product"))
			return
		}
		if product == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Product not found"))
			return
		}

		render.JSON(w, r, product)
	}
}
