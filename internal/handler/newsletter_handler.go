package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/service"
)

// NewsletterHandler handles newsletter endpoints.
type NewsletterHandler struct {
	newsletterService service.NewsletterService
}

// NewNewsletterHandler creates a new newsletter handler.
func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// SubscribeRequest represents a subscription request.
type SubscribeRequest struct {
	Email string  `json:"email" validate:"required,email"`
	Name  *string `json:"name" validate:"omitempty,min=1"`
}

// UnsubscribeRequest represents an unsubscribe request.
type UnsubscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe godoc
// @Summary Subscribe or reactivate a newsletter subscription
// @Tags newsletter
// @Accept json
// @Produce json
// @Param request body SubscribeRequest true "Subscriber"
// @Success 200 {object} MessageResponse "Reactivated"
// @Success 201 {object} MessageResponse "Created"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	outcome, err := h.newsletterService.Subscribe(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to subscribe")
	}

	if outcome == model.SubscriptionReactivated {
		return c.JSON(http.StatusOK, MessageResponse{Message: "Subscription reactivated successfully"})
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Subscribed successfully"})
}

// Unsubscribe godoc
// @Summary Deactivate a newsletter subscription
// @Description Repeating the call on an inactive subscription succeeds; only unknown emails are rejected.
// @Tags newsletter
// @Accept json
// @Produce json
// @Param request body UnsubscribeRequest true "Subscriber email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req UnsubscribeRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return apperrors.BadRequest("Email is required")
	}

	if err := h.newsletterService.Unsubscribe(c.Request().Context(), req.Email); err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to unsubscribe")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Unsubscribed successfully"})
}

// ListSubscribers godoc
// @Summary List active subscribers, most recent first
// @Tags newsletter
// @Produce json
// @Success 200 {array} model.Subscriber
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/newsletter/subscribers [get]
func (h *NewsletterHandler) ListSubscribers(c echo.Context) error {
	subscribers, err := h.newsletterService.ListActive(c.Request().Context())
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "Failed to fetch subscribers")
	}
	return c.JSON(http.StatusOK, subscribers)
}
