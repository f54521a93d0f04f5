package promo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"BazaarBot/internal/lib/api/response"
	"BazaarBot/internal/lib/sl"
)

type GenerateRequest struct {
	Quantity  int        `json:"quantity"`
	Discount  int        `json:"discount"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func GeneratePromoCodes(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		logger = logger.With(
			slog.Int("quantity", req.Quantity),
			slog.Int("discount", req.Discount),
		)

		var expiresAt time.Time
		if req.ExpiresAt != nil {
			expiresAt = *req.ExpiresAt
		}

		err := handler.GeneratePromoCodes(req.Quantity, req.Discount, expiresAt)
		if err != nil {
			logger.Error("generate promo codes", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Generation failed: %v", err)))
			return
		}
		logger.Debug("promo codes generated")

		render.JSON(w, r, response.Ok("Promo codes generated successfully"))
	}
}
