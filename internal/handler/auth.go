package handler

import (
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier checks admin bearer tokens against a bcrypt hash. The hash
// can be swapped at runtime when the config file changes.
type TokenVerifier struct {
	hash atomic.Pointer[[]byte]
}

// NewTokenVerifier creates a verifier. An empty hash disables admin checks.
func NewTokenVerifier(hash string) *TokenVerifier {
	v := &TokenVerifier{}
	v.SetHash(hash)
	return v
}

// SetHash replaces the accepted hash
func (v *TokenVerifier) SetHash(hash string) {
	if hash == "" {
		v.hash.Store(nil)
		return
	}
	b := []byte(hash)
	v.hash.Store(&b)
}

// Enabled reports whether a hash is configured
func (v *TokenVerifier) Enabled() bool {
	return v != nil && v.hash.Load() != nil
}

// Verify reports whether token matches the configured hash
func (v *TokenVerifier) Verify(token string) bool {
	if v == nil {
		return false
	}
	h := v.hash.Load()
	if h == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(*h, []byte(token)) == nil
}

// HashToken produces the bcrypt hash to put in the admin.token_hash setting
func HashToken(token string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
