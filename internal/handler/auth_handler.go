package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/auth"
	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to register user")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   session.Token,
		User:    session.User,
	})
}

// Login godoc
// @Summary Login user
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to login")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    session.User,
	})
}

// Logout godoc
// @Summary Revoke the presented session token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to logout")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
