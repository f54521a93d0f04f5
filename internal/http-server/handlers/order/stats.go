package order

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func Stats(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("stats not available")
			render.JSON(w, r, response.Error("Stats not available"))
			return
		}

		stats, err := handler.OrderStats()
		if err != nil {
			logger.Error("order stats", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to compute stats"))
			return
		}

		render.JSON(w, r, stats)
	}
}
