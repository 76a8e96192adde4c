package model

import "time"

// MinRating and MaxRating bound a rating value.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a user's star rating and optional review of a product.
// At most one row exists per (product, user); the repository enforces it.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index:idx_rating_product_user,priority:1"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_rating_product_user,priority:2;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Review    *string   `json:"review" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (Rating) TableName() string {
	return "product_ratings"
}

// RatingStats is recomputed from live rows on every read.
// AverageRating is nil when the product has no ratings.
type RatingStats struct {
	AverageRating *float64 `json:"average_rating" gorm:"column:average_rating"`
	TotalRatings  int64    `json:"total_ratings" gorm:"column:total_ratings"`
}

// ProductRating is a rating joined with the rater's display name.
type ProductRating struct {
	Rating
	UserName string `json:"user_name" gorm:"column:user_name"`
}

// UserRating is a rating joined with the rated product's name and image.
type UserRating struct {
	Rating
	ProductName  string  `json:"product_name" gorm:"column:product_name"`
	ProductImage *string `json:"product_image" gorm:"column:product_image"`
}
