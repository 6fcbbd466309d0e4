// Package authsvc issues and verifies HS256 access tokens.
package authsvc

import (
	"errors"
	"time"

	authmodels "github.com/Kapilrajreddy/youtube-api/internal/api/auth/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const issuer = "videotube"

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken signs a token for userID valid for the configured TTL.
func (s *TokenService) IssueToken(userID primitive.ObjectID, username string) (string, error) {
	if userID.IsZero() {
		return "", common.NewInvalidIDError("userId")
	}
	now := s.now()
	claims := authmodels.AccessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies the signature and expiry and returns the subject user id.
func (s *TokenService) ParseToken(raw string) (primitive.ObjectID, error) {
	claims := &authmodels.AccessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return primitive.NilObjectID, common.ErrTokenExpired
		}
		return primitive.NilObjectID, common.ErrTokenInvalid
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil || id.IsZero() {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return id, nil
}
