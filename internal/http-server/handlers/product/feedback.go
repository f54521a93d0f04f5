package product

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func Feedback(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("product feedback not available")
			render.JSON(w, r, response.Error("Product feedback not available"))
			return
		}

		id := chi.URLParam(r, "id")
		feedback, err := handler.ProductFeedback(id)
		if err != nil {
			logger.Error("product feedback", slog.String("product_id", id), sl.Err(err))
			render.JSON(w, r, response.Error("Failed to load product feedback"))
			return
		}
		if feedback == nil {
			feedback = []entity.Feedback{}
		}

		render.JSON(w, r, feedback)
	}
}
