package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"BazaarBot/entity"
	"BazaarBot/internal/lib/validate"
)

// AddFeedback records a buyer's rating for a product.
func (s *Service) AddFeedback(ctx context.Context, productID string, telegramId int64, rating int, comment string) (*entity.Feedback, error) {
	product, err := s.storage.GetProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("loading product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	feedback := entity.NewFeedback(productID, telegramId, rating, comment)
	if err := validate.Struct(feedback); err != nil {
		return nil, fmt.Errorf("invalid feedback: %w", err)
	}

	if err := s.storage.InsertFeedback(feedback); err != nil {
		return nil, fmt.Errorf("saving feedback: %w", err)
	}

	s.log.Info("feedback recorded",
		slog.String("product_id", productID),
		slog.Int64("user_id", telegramId),
		slog.Int("rating", rating),
	)
	return feedback, nil
}

// ProductFeedback lists the feedback left for a product.
func (s *Service) ProductFeedback(ctx context.Context, productID string) ([]entity.Feedback, error) {
	return s.storage.FeedbackByProduct(productID)
}
