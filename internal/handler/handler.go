package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/model"
)

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatsResponse is a confirmation carrying the refreshed rating aggregate.
type StatsResponse struct {
	Message string            `json:"message"`
	Stats   model.RatingStats `json:"stats"`
}

// bindAndValidate decodes the body into req and runs the struct validator.
// Both failures become a 400 "Validation error" with field details.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation(apperrors.FieldError{Field: "body", Message: "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return apperrors.FromValidation(err)
	}
	return nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("Invalid " + label)
	}
	return uint(id), nil
}
