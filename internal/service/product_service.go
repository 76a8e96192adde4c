package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/repository"
)

// ProductService handles catalog operations.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.ProductDetail, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product, replaceChildren bool) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string) ([]model.Product, error)
	SeedProducts(ctx context.Context, products []model.Product, reset bool) (int, error)
}

type productService struct {
	products repository.ProductRepository
	ratings  repository.RatingRepository
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, ratings repository.RatingRepository) ProductService {
	return &productService{
		products: products,
		ratings:  ratings,
	}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

// Get returns the product with its ingredients, health claims and rating aggregate.
func (s *productService) Get(ctx context.Context, id uint) (*model.ProductDetail, error) {
	product, err := s.products.FindWithChildren(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	stats, err := s.ratings.Stats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}

	detail := &model.ProductDetail{
		Product:      *product,
		Ingredients:  product.Ingredients,
		HealthClaims: product.HealthClaims,
		Ratings:      stats,
	}
	if detail.Ingredients == nil {
		detail.Ingredients = []model.Ingredient{}
	}
	if detail.HealthClaims == nil {
		detail.HealthClaims = []model.HealthClaim{}
	}
	return detail, nil
}

func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.ID = 0
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, product *model.Product, replaceChildren bool) (*model.Product, error) {
	if err := s.products.Update(ctx, product, replaceChildren); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// Delete removes the product and its children. Missing ids succeed.
func (s *productService) Delete(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	return s.products.Search(ctx, query)
}

// SeedProducts loads a catalog, optionally emptying the existing one first.
func (s *productService) SeedProducts(ctx context.Context, products []model.Product, reset bool) (int, error) {
	if reset {
		if _, err := s.products.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("reset catalog: %w", err)
		}
	}

	created := 0
	for i := range products {
		if _, err := s.Create(ctx, &products[i]); err != nil {
			return created, fmt.Errorf("seed product %q: %w", products[i].Name, err)
		}
		created++
	}
	return created, nil
}
