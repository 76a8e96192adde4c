package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is a catalog entry. Ingredients, health claims and ratings belong to it.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null;index"`
	Description  *string   `json:"description" gorm:"type:text"`
	Barcode      *string   `json:"barcode" gorm:"size:64;index"`
	Manufacturer *string   `json:"manufacturer" gorm:"size:255"`
	Category     *string   `json:"category" gorm:"size:128;index"`
	ImageURL     *string   `json:"image_url" gorm:"size:1024"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Ingredients  []Ingredient  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	HealthClaims []HealthClaim `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Ratings      []Rating      `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (Product) TableName() string {
	return "products"
}

// Ingredient is one line of a product's composition.
type Ingredient struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	ProductID uint             `json:"product_id" gorm:"not null;index"`
	Name      string           `json:"name" gorm:"size:255;not null"`
	Amount    *decimal.Decimal `json:"amount" gorm:"type:decimal(12,4)"`
	Unit      *string          `json:"unit" gorm:"size:32"`
	Notes     *string          `json:"notes" gorm:"type:text"`
}

// TableName overrides the default table name.
func (Ingredient) TableName() string {
	return "product_ingredients"
}

// HealthClaim is a claim printed on or made about a product.
type HealthClaim struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	ProductID  uint              `json:"product_id" gorm:"not null;index"`
	Claim      string            `json:"claim" gorm:"type:text;not null"`
	Source     *string           `json:"source" gorm:"size:1024"`
	Attributes datatypes.JSONMap `json:"attributes,omitempty" gorm:"type:json"`
}

// TableName overrides the default table name.
func (HealthClaim) TableName() string {
	return "product_health_claims"
}

// ProductDetail is a product together with its children and rating aggregate.
type ProductDetail struct {
	Product
	Ingredients  []Ingredient  `json:"ingredients"`
	HealthClaims []HealthClaim `json:"healthClaims"`
	Ratings      RatingStats   `json:"ratings"`
}
