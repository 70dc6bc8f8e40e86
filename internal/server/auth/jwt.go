// Package auth provides the stateless authentication primitives:
// password hashing/verification and issuing/validating signed,
// time-limited access tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod maps a configured algorithm name to a jwt.SigningMethod.
// Only the HMAC family is supported; anything else is a configuration error.
func SigningMethod(alg string) (jwt.SigningMethod, error) {
	switch alg {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	}
	return nil, fmt.Errorf("%w: unsupported signing algorithm %q", common.ErrorConfiguration, alg)
}

// GenerateToken issues a token carrying the subject and an absolute expiry
// validityDuration from now, signed with secretKey.
func GenerateToken(subject string, secretKey []byte, method jwt.SigningMethod, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken validates tokenString against secretKey and the
// configured algorithm and returns the embedded subject. Expired tokens yield
// common.ErrTokenExpired; malformed or wrongly signed tokens yield
// common.ErrInvalidToken.
func GetSubjectFromToken(tokenString string, secretKey []byte, alg string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{alg}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
