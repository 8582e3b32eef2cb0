// Package auth handles account registration, credential checks, and the
// bearer tokens that tie an API call to its owner.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

// Claims carries the signed facts about a caller: which account it is and
// what role it holds.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64          `json:"uid"`
	Role   model.UserRole `json:"role"`
}

// TokenIssuer mints and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

// NewTokenIssuer creates an issuer. The secret must not be empty; token
// validity falls back to 24 hours when zero.
func NewTokenIssuer(secret []byte, validity time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: token secret", common.ErrMissingConfig)
	}
	if validity <= 0 {
		validity = 24 * time.Hour
	}
	return &TokenIssuer{secret: secret, validity: validity}, nil
}

// Issue signs a token for the user.
func (i *TokenIssuer) Issue(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
			Subject:   user.Email,
		},
		UserID: user.ID,
		Role:   user.Role,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature and expiry and returns its claims.
// Every failure maps to the same unauthorized error so callers leak nothing
// about why a token was refused.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, common.ErrUnauthorized
	}

	return claims, nil
}
