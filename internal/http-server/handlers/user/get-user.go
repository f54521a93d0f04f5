package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func GetUser(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.user")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("user lookup not available")
			render.JSON(w, r, response.Error("User lookup not available"))
			return
		}

		telegramId, err := strconv.ParseInt(chi.URLParam(r, "telegramId"), 10, 64)
		if err != nil {
			render.JSON(w, r, response.Error("Invalid telegram id"))
			return
		}

		found, err := handler.GetUser(telegramId)
		if err != nil {
			logger.Error("get user", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to get user"))
			return
		}
		if found == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
			return
		}

		render.JSON(w, r, found)
	}
}
