package model

import "github.com/shopspring/decimal"

// ProductInput is the writable shape of a product, shared by the HTTP API and the seed command.
type ProductInput struct {
	Name         string             `json:"name" validate:"required,min=1"`
	Description  *string            `json:"description"`
	Barcode      *string            `json:"barcode"`
	Manufacturer *string            `json:"manufacturer"`
	Category     *string            `json:"category"`
	ImageURL     *string            `json:"image_url" validate:"omitempty,url"`
	Ingredients  []IngredientInput  `json:"ingredients,omitempty" validate:"omitempty,dive"`
	HealthClaims []HealthClaimInput `json:"health_claims,omitempty" validate:"omitempty,dive"`
}

// IngredientInput is one ingredient line of a ProductInput.
type IngredientInput struct {
	Name   string           `json:"name" validate:"required,min=1"`
	Amount *decimal.Decimal `json:"amount"`
	Unit   *string          `json:"unit"`
	Notes  *string          `json:"notes"`
}

// HealthClaimInput is one health claim of a ProductInput.
type HealthClaimInput struct {
	Claim      string                 `json:"claim" validate:"required,min=1"`
	Source     *string                `json:"source"`
	Attributes map[string]interface{} `json:"attributes"`
}

// HasChildren reports whether the input carries ingredients or health claims.
func (in ProductInput) HasChildren() bool {
	return in.Ingredients != nil || in.HealthClaims != nil
}

// ToProduct converts the input into a new, unsaved Product.
func (in ProductInput) ToProduct() *Product {
	p := &Product{
		Name:         in.Name,
		Description:  in.Description,
		Barcode:      in.Barcode,
		Manufacturer: in.Manufacturer,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
	}
	for _, ing := range in.Ingredients {
		p.Ingredients = append(p.Ingredients, Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Notes:  ing.Notes,
		})
	}
	for _, hc := range in.HealthClaims {
		p.HealthClaims = append(p.HealthClaims, HealthClaim{
			Claim:      hc.Claim,
			Source:     hc.Source,
			Attributes: hc.Attributes,
		})
	}
	return p
}
