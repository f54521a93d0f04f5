package product

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
	"BazaarBot/internal/service/catalog"
)

// ProductRequest is the back-office create/update payload. Image is
// base64 in JSON per encoding/json []byte handling.
type ProductRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Image       []byte `json:"image,omitempty"`
	ImageMime   string `json:"image_mime,omitempty"`
	CategoryID  string `json:"category_id"`
	Stock       int    `json:"stock"`
}

func (req ProductRequest) draft() entity.ProductDraft {
	return entity.ProductDraft{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		ImageMime:   req.ImageMime,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
	}
}

func CreateProduct(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("product creation not available")
			render.JSON(w, r, response.Error("Product creation not available"))
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		product, err := handler.CreateProduct(req.draft())
		if err != nil {
			logger.Error("create product", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to create product"))
			return
		}
		logger.Debug("product created", slog.String("product_id", product.ID))

		render.JSON(w, r, product)
	}
}

func UpdateProduct(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("product update not available")
			render.JSON(w, r, response.Error("Product update not available"))
			return
		}

		id := chi.URLParam(r, "id")

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		product, err := handler.UpdateProduct(id, req.draft())
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Product not found"))
				return
			}
			logger.Error("update product", slog.String("product_id", id), sl.Err(err))
			render.JSON(w, r, response.Error("Failed to update product"))
			return
		}
		logger.Debug("product updated", slog.String("product_id", product.ID))

		render.JSON(w, r, product)
	}
}
