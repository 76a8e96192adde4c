package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/auth"
	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

// RatingHandler handles review endpoints.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRatingRequest represents a rating submission. The rater is taken from the token.
type SubmitRatingRequest struct {
	ProductID uint    `json:"product_id" validate:"required,gt=0"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Review    *string `json:"review"`
}

// Submit godoc
// @Summary Rate a product, replacing the caller's earlier rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRatingRequest true "Rating"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return err
	}

	var req SubmitRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	stats, err := h.ratingService.Submit(c.Request().Context(), claims.UserID, req.ProductID, req.Rating, req.Review)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to submit rating")
	}
	return c.JSON(http.StatusOK, StatsResponse{Message: "Rating submitted successfully", Stats: stats})
}

// ListForProduct godoc
// @Summary List a product's ratings with rater names
// @Tags ratings
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} service.ProductRatings
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/ratings/product/{id} [get]
func (h *RatingHandler) ListForProduct(c echo.Context) error {
	id, err := pathID(c, "id", "product id")
	if err != nil {
		return err
	}

	ratings, err := h.ratingService.ListForProduct(c.Request().Context(), id)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to fetch ratings")
	}
	return c.JSON(http.StatusOK, ratings)
}

// ListForUser godoc
// @Summary List the signed-in user's ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserRating
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/ratings/user [get]
func (h *RatingHandler) ListForUser(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return err
	}

	ratings, err := h.ratingService.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to fetch user ratings")
	}
	return c.JSON(http.StatusOK, ratings)
}

// Delete godoc
// @Summary Delete the signed-in user's rating of a product
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/ratings/{productId} [delete]
func (h *RatingHandler) Delete(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return err
	}

	productID, err := pathID(c, "productId", "product id")
	if err != nil {
		return err
	}

	stats, err := h.ratingService.Delete(c.Request().Context(), claims.UserID, productID)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to delete rating")
	}
	return c.JSON(http.StatusOK, StatsResponse{Message: "Rating deleted successfully", Stats: stats})
}
