package auth

import (
	"context"
	"time"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/kv"
)

const revokedTokenKeyPrefix = "revoked:session_token:"

// TokenStoreInterface defines the interface for token revocation storage.
type TokenStoreInterface interface {
	RevocationChecker
	Revoke(ctx context.Context, claims *Claims) error
}

// TokenStore keeps revoked token ids in Redis until the tokens would have expired anyway.
type TokenStore struct {
	kv  *kv.Client
	now func() time.Time
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store. A disabled kv client makes revocation a no-op.
func NewTokenStore(client *kv.Client) *TokenStore {
	return &TokenStore{kv: client, now: time.Now}
}

// Revoke marks the token as unusable for the rest of its lifetime.
func (s *TokenStore) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := TokenExpiry
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	return s.kv.Set(ctx, revokedTokenKeyPrefix+claims.ID, []byte("1"), ttl)
}

// IsRevoked checks the revocation list. Unreachable Redis reads as not revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	return s.kv.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}
