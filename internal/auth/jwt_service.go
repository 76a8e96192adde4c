package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "github.com/Saai-Jaswant/God-Pill-Project-X/internal/errors"
)

// TokenExpiry is the lifetime of a session token.
const TokenExpiry = 24 * time.Hour

// Claims represents JWT claims.
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) bool
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret  []byte
	revoked RevocationChecker
	now     func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
// revoked may be nil, in which case tokens are only checked for signature and expiry.
func NewJWTService(secret string, revoked RevocationChecker) *JWTService {
	return &JWTService{
		secret:  []byte(secret),
		revoked: revoked,
		now:     time.Now,
	}
}

// Issue generates a signed session token for the user, valid for TokenExpiry.
func (s *JWTService) Issue(userID uint, email string) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns its claims. Every failure wraps ErrUnauthorized.
func (s *JWTService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty token: %w", apperrors.ErrUnauthorized)
	}

	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("token without subject: %w", apperrors.ErrUnauthorized)
	}
	if s.revoked != nil && claims.ID != "" && s.revoked.IsRevoked(ctx, claims.ID) {
		return nil, fmt.Errorf("token revoked: %w", apperrors.ErrUnauthorized)
	}

	return claims, nil
}
