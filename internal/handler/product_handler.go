package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary List products, newest first
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to fetch products")
	}
	return c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get a product with ingredients, health claims and rating aggregate
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", "product id")
	if err != nil {
		return err
	}

	detail, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to fetch product")
	}
	return c.JSON(http.StatusOK, detail)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body model.ProductInput true "Product"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req model.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), req.ToProduct())
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to create product")
	}
	return c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Replace a product's fields
// @Description Sending ingredients or health_claims replaces both child lists.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.ProductInput true "Product"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", "product id")
	if err != nil {
		return err
	}

	var req model.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product := req.ToProduct()
	product.ID = id
	updated, err := h.productService.Update(c.Request().Context(), product, req.HasChildren())
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to update product")
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a product and its ingredients, health claims and ratings
// @Description Succeeds whether or not the product exists.
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id", "product id")
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}

// Search godoc
// @Summary Search products by name, description or manufacturer
// @Tags products
// @Produce json
// @Param query path string true "Case-insensitive substring"
// @Success 200 {array} model.Product
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/products/search/{query} [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.productService.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to search products")
	}
	return c.JSON(http.StatusOK, products)
}
