// Package models holds the access-token claims.
package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload of an access token. Subject carries the user id as ObjectID hex.
type AccessClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}
