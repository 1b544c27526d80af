/* auth.go
 * Contains the token service that issues and verifies the signed identity tokens
 * carried in the custom "token" request header
 */

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid is returned for malformed tokens, bad signatures and
	// tokens signed with an unexpected method
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned once the token lifetime has elapsed.
	// There is no refresh; the client has to request a new token
	ErrTokenExpired = errors.New("token expired")
)

// TokenTTL is how long an issued token stays valid. Role changes made while
// a token is live only take effect on re-issue, so this is also the maximum
// staleness window for authorization decisions.
const TokenTTL = time.Hour

// Claims are the identity attributes embedded in every issued token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies identity tokens with a shared HS256 secret
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service from the shared secret
// Preconditions: receives the HS256 signing secret, which must not be empty
// Postconditions: returns the service, or an error for a missing secret
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required")
	}
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}, nil
}

// Issue signs a time-bounded token carrying the user's email and role
// Preconditions: receives the email and role to embed
// Postconditions: returns the signed compact token string, or a signing error
func (s *TokenService) Issue(email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry of a token and returns its claims
// Preconditions: receives the compact token string from the request header
// Postconditions: returns the embedded claims, ErrTokenExpired after the
// lifetime has elapsed, or ErrTokenInvalid for anything else that fails
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
