package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/auth"
	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

// UserHandler serves the signed-in user's profile.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a profile update. An empty or missing password keeps the current one.
type UpdateProfileRequest struct {
	Name     string  `json:"name" validate:"required,min=1"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// GetProfile godoc
// @Summary Get the signed-in user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to fetch profile")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the signed-in user's name and optionally password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation(apperrors.FieldError{Field: "body", Message: "invalid request body"})
	}
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.FromValidation(err)
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), claims.UserID, req.Name, req.Password)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, user)
}
