package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
)

// contextKey is where the middleware stores verified *Claims.
const contextKey = "session"

// Middleware verifies the bearer token on every request and stores its claims
// in the echo context. The actor identity is only ever taken from these claims.
func Middleware(tokens *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  contextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Verify(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)) == "" {
				return apperrors.Unauthorized("No token provided")
			}
			return apperrors.Unauthorized("Invalid token")
		},
	})
}

// bearerToken strips the Bearer scheme. Any other header is returned as is.
func bearerToken(header string) string {
	const scheme = "Bearer"
	if len(header) >= len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
		return strings.TrimSpace(header[len(scheme):])
	}
	return header
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, error) {
	claims, ok := c.Get(contextKey).(*Claims)
	if !ok || claims == nil {
		return nil, apperrors.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	return claims, nil
}
