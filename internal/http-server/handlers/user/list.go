package user

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

func ListUsers(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.user")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("user listing not available")
			render.JSON(w, r, response.Error("User listing not available"))
			return
		}

		users, err := handler.ListUsers()
		if err != nil {
			logger.Error("list users", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list users"))
			return
		}
		logger.Debug("list users", slog.Int("count", len(users)))

		render.JSON(w, r, users)
	}
}
