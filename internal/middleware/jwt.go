package middleware

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer identifies the service that issues all access tokens.
const TokenIssuer = "RentLedger"

// Token scopes. Dashboard tokens carry a landlord user subject; portal
// tokens are minted after a tenant passes SMS verification.
const (
	ScopeDashboard = "dashboard"
	ScopePortal    = "portal"
)

// GenerateAccessToken signs a short-lived RS256 token for `subject`.
func GenerateAccessToken(priv *rsa.PrivateKey, subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   TokenIssuer,
		"sub":   subject,
		"scope": scope,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
}

// ValidateToken checks the token's signature and standard claims and
// enforces the expected scope. Any deviation returns a descriptive error.
func ValidateToken(tokenString string, publicKey *rsa.PublicKey, wantScope string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok || iss != TokenIssuer {
		return nil, errors.New("invalid issuer claim")
	}

	scope, ok := claims["scope"].(string)
	if !ok || scope != wantScope {
		return nil, errors.New("wrong token scope")
	}

	return token, nil
}
