package promo

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func GetActivePromoCodes(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.promo")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("promo service not available")
			render.JSON(w, r, response.Error("Promo service not available"))
			return
		}

		codes, err := handler.ActivePromoCodes()
		if err != nil {
			logger.Error("get active promo codes", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to get promo codes"))
			return
		}

		render.JSON(w, r, codes)
	}
}
