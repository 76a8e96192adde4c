package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
)

// likeEscaper makes LIKE wildcards in user input match literally. '!' is used
// as the escape character because MySQL and SQLite disagree about backslashes.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindWithChildren(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product, replaceChildren bool) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns every product, newest first.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID finds a product without its children.
func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindWithChildren finds a product with ingredients and health claims loaded.
func (r *productRepository) FindWithChildren(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("HealthClaims", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a product together with any ingredients and health claims it carries.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit("Ratings").Create(product).Error
}

// Update overwrites the product columns. With replaceChildren set, the existing
// ingredients and health claims are replaced by the ones on product.
// Returns gorm.ErrRecordNotFound when the product does not exist.
func (r *productRepository) Update(ctx context.Context, product *model.Product, replaceChildren bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, product.ID).Error; err != nil {
			return err
		}

		err := tx.Model(&existing).
			Select("Name", "Description", "Barcode", "Manufacturer", "Category", "ImageURL", "UpdatedAt").
			Updates(product).Error
		if err != nil {
			return err
		}

		if replaceChildren {
			if err := replaceProductChildren(tx, product); err != nil {
				return err
			}
		}

		return tx.First(product, product.ID).Error
	})
}

func replaceProductChildren(tx *gorm.DB, product *model.Product) error {
	if err := tx.Where("product_id = ?", product.ID).Delete(&model.Ingredient{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&model.HealthClaim{}).Error; err != nil {
		return err
	}
	for i := range product.Ingredients {
		product.Ingredients[i].ID = 0
		product.Ingredients[i].ProductID = product.ID
	}
	for i := range product.HealthClaims {
		product.HealthClaims[i].ID = 0
		product.HealthClaims[i].ProductID = product.ID
	}
	if len(product.Ingredients) > 0 {
		if err := tx.Create(&product.Ingredients).Error; err != nil {
			return err
		}
	}
	if len(product.HealthClaims) > 0 {
		if err := tx.Create(&product.HealthClaims).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a product and everything that belongs to it. Deleting a
// missing id is not an error.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&model.Rating{}, &model.Ingredient{}, &model.HealthClaim{}} {
			if err := tx.Where("product_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

// DeleteAll empties the catalog, children included.
func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&model.Rating{}, &model.Ingredient{}, &model.HealthClaim{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Product{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// Search matches query case-insensitively as a substring of name, description or manufacturer.
func (r *productRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	pattern := "%" + strings.ToLower(likeEscaper.Replace(query)) + "%"

	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(manufacturer) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern).
		Order("created_at DESC, id DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
