package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
)

// RatingRepository defines review persistence operations.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.Rating) (created bool, err error)
	Stats(ctx context.Context, productID uint) (model.RatingStats, error)
	ListForProduct(ctx context.Context, productID uint) ([]model.ProductRating, error)
	ListForUser(ctx context.Context, userID uint) ([]model.UserRating, error)
	Delete(ctx context.Context, productID, userID uint) error
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert stores the caller's rating for a product, overwriting value and review when
// one already exists. The lookup and the write are separate statements; two concurrent
// first ratings from the same user can both insert.
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) (bool, error) {
	db := r.db.WithContext(ctx)

	var existing model.Rating
	err := db.Where("product_id = ? AND user_id = ?", rating.ProductID, rating.UserID).
		Order("id").
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rating.ID = 0
		return true, db.Create(rating).Error
	}
	if err != nil {
		return false, err
	}

	now := time.Now()
	err = db.Model(&model.Rating{}).
		Where("product_id = ? AND user_id = ?", rating.ProductID, rating.UserID).
		Updates(map[string]interface{}{
			"rating":     rating.Rating,
			"review":     rating.Review,
			"updated_at": now,
		}).Error
	if err != nil {
		return false, err
	}

	rating.ID = existing.ID
	rating.CreatedAt = existing.CreatedAt
	rating.UpdatedAt = now
	return false, nil
}

// Stats aggregates the live ratings of a product.
func (r *ratingRepository) Stats(ctx context.Context, productID uint) (model.RatingStats, error) {
	var stats model.RatingStats
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("AVG(rating) AS average_rating, COUNT(*) AS total_ratings").
		Where("product_id = ?", productID).
		Scan(&stats).Error
	return stats, err
}

// ListForProduct returns a product's ratings with the rater's name, newest first.
func (r *ratingRepository) ListForProduct(ctx context.Context, productID uint) ([]model.ProductRating, error) {
	ratings := []model.ProductRating{}
	err := r.db.WithContext(ctx).
		Table("product_ratings AS r").
		Select("r.*, u.name AS user_name").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.product_id = ?", productID).
		Order("r.created_at DESC, r.id DESC").
		Scan(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListForUser returns a user's ratings with product name and image, newest first.
func (r *ratingRepository) ListForUser(ctx context.Context, userID uint) ([]model.UserRating, error) {
	ratings := []model.UserRating{}
	err := r.db.WithContext(ctx).
		Table("product_ratings AS r").
		Select("r.*, p.name AS product_name, p.image_url AS product_image").
		Joins("JOIN products p ON p.id = r.product_id").
		Where("r.user_id = ?", userID).
		Order("r.created_at DESC, r.id DESC").
		Scan(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// Delete removes the user's rating for a product. Missing rows are not an error.
func (r *ratingRepository) Delete(ctx context.Context, productID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Delete(&model.Rating{}).Error
}
