package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures surfaced to the middleware.
var (
	ErrTokenMissing = errors.New("access token required")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the payload embedded in every portal token: identity plus the
// location scope the role-scope filter narrows queries with.
type Claims struct {
	UserID   string  `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Name     string  `json:"name"`
	State    *string `json:"state"`
	District *string `json:"district"`
	Village  *string `json:"village"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies portal access tokens. Tokens are HS256
// signed with a shared secret and carry a fixed validity window; there is no
// refresh flow, expired tokens require a fresh login.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token embedding the user's identity and scope
func (t *TokenIssuer) Issue(user *User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Name:     user.Name,
		State:    user.State,
		District: user.District,
		Village:  user.Village,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and expiry and returns the decoded claims
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
