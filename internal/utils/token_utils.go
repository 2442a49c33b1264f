package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims are the JWT claims issued at login. The subject is the operator's
// user ID; Role gates access to the admin surface.
type AuthClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateJWT generates a new signed token for an operator.
func GenerateJWT(userID, role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string, validates its signature and
// standard claims, and returns the claims when valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
