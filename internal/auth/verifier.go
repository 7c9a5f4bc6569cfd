package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catgw/internal/model"
)

var (
	// ErrAccountGone is returned when the user a token asserts no longer exists.
	ErrAccountGone = errors.New("account not found")
	// ErrClaimMismatch is returned when the account's current email differs
	// from the token's email claim.
	ErrClaimMismatch = errors.New("claim mismatch")
)

// UserFinder is the slice of the user repository the verifier needs.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Verifier validates presented tokens. Beyond the cryptographic checks it
// re-resolves the claimed identity against the user store, so a token stays
// valid only while it reflects the account's current identity. Only the email
// claim is re-checked: a role change does not invalidate already-issued
// tokens, they keep asserting the issued role until natural expiry.
type Verifier struct {
	jwt   *JWTService
	users UserFinder
}

// NewVerifier creates a token verifier backed by the given user store.
func NewVerifier(jwtService *JWTService, users UserFinder) *Verifier {
	return &Verifier{jwt: jwtService, users: users}
}

// Verify validates signature and expiry, then cross-checks the claims against
// the stored account. Failures are ErrTokenExpired, ErrTokenMalformed,
// ErrAccountGone or ErrClaimMismatch; any other lookup failure is returned
// wrapped. On success the token's original claims are returned unchanged.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := v.jwt.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := v.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountGone
		}
		return nil, fmt.Errorf("look up account %d: %w", claims.UserID, err)
	}

	if user.Email != claims.Email {
		return nil, ErrClaimMismatch
	}

	return claims, nil
}
