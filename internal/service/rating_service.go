package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/repository"
)

// ProductRatings is a product's ratings with the aggregate over them.
type ProductRatings struct {
	Ratings []model.ProductRating `json:"ratings"`
	Stats   model.RatingStats     `json:"stats"`
}

// RatingService handles reviews. The acting user always comes from the verified token.
type RatingService interface {
	Submit(ctx context.Context, userID, productID uint, rating int, review *string) (model.RatingStats, error)
	ListForProduct(ctx context.Context, productID uint) (*ProductRatings, error)
	ListForUser(ctx context.Context, userID uint) ([]model.UserRating, error)
	Delete(ctx context.Context, userID, productID uint) (model.RatingStats, error)
}

type ratingService struct {
	ratings  repository.RatingRepository
	products repository.ProductRepository
	log      *zap.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(ratings repository.RatingRepository, products repository.ProductRepository, log *zap.Logger) RatingService {
	return &ratingService{
		ratings:  ratings,
		products: products,
		log:      log,
	}
}

// Submit creates or overwrites the user's rating and returns the refreshed aggregate.
func (s *ratingService) Submit(ctx context.Context, userID, productID uint, rating int, review *string) (model.RatingStats, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RatingStats{}, apperrors.ErrProductNotFound
		}
		return model.RatingStats{}, fmt.Errorf("find product: %w", err)
	}

	created, err := s.ratings.Upsert(ctx, &model.Rating{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Review:    review,
	})
	if err != nil {
		return model.RatingStats{}, fmt.Errorf("upsert rating: %w", err)
	}
	s.log.Debug("rating stored",
		zap.Uint("product_id", productID),
		zap.Uint("user_id", userID),
		zap.Int("rating", rating),
		zap.Bool("created", created),
	)

	return s.stats(ctx, productID)
}

func (s *ratingService) ListForProduct(ctx context.Context, productID uint) (*ProductRatings, error) {
	ratings, err := s.ratings.ListForProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	stats, err := s.stats(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductRatings{Ratings: ratings, Stats: stats}, nil
}

func (s *ratingService) ListForUser(ctx context.Context, userID uint) ([]model.UserRating, error) {
	return s.ratings.ListForUser(ctx, userID)
}

// Delete removes only the acting user's rating for the product.
func (s *ratingService) Delete(ctx context.Context, userID, productID uint) (model.RatingStats, error) {
	if err := s.ratings.Delete(ctx, productID, userID); err != nil {
		return model.RatingStats{}, fmt.Errorf("delete rating: %w", err)
	}
	return s.stats(ctx, productID)
}

func (s *ratingService) stats(ctx context.Context, productID uint) (model.RatingStats, error) {
	stats, err := s.ratings.Stats(ctx, productID)
	if err != nil {
		return model.RatingStats{}, fmt.Errorf("rating stats: %w", err)
	}
	return stats, nil
}
