package product

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func ListCategories(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("category listing not available")
			render.JSON(w, r, response.Error("Category listing not available"))
			return
		}

		categories, err := handler.ListCategories()
		if err != nil {
			logger.Error("list categories", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list categories"))
			return
		}

		render.JSON(w, r, categories)
	}
}

type CreateCategoryRequest struct {
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
}

func CreateCategory(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("category creation not available")
			render.JSON(w, r, response.Error("Category creation not available"))
			return
		}

		var req CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		category, err := handler.CreateCategory(req.Name, req.NameEn)
		if err != nil {
			logger.Error("create category", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to create category"))
			return
		}
		logger.Debug("category created", slog.String("category_id", category.ID))

		render.JSON(w, r, category)
	}
}
