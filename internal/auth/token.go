// Package auth implements token based authentication and the
// permission to route mapping for the dashboard client.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("the authentication token is invalid or expired")
	ErrNoToken      = errors.New("a bearer token is required for this endpoint")
)

// SignToken returns a signed token for the user with the given ID.
// Tokens are valid for 24 hours.
func SignToken(userID uuid.UUID, name string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"name": name,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies a signed token and returns the user ID it was
// issued for.
func ParseToken(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return id, nil
}
