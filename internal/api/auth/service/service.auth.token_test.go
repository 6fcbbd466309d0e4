package authsvc

import (
	"testing"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "0123456789abcdef0123"

func TestIssueAndParse(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	id := primitive.NewObjectID()

	raw, err := svc.IssueToken(id, "alice")
	require.NoError(t, err)

	got, err := svc.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseRejectsExpired(t *testing.T) {
	svc := NewTokenService(testSecret, time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err := svc.IssueToken(primitive.NewObjectID(), "")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ParseToken(raw)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	other := NewTokenService("another-secret-value-xx", time.Hour)
	raw, err := other.IssueToken(primitive.NewObjectID(), "")
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).ParseToken(raw)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseRejectsNoneAlg(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: primitive.NewObjectID().Hex(), Issuer: issuer}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).ParseToken(raw)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestIssueRejectsZeroID(t *testing.T) {
	_, err := NewTokenService(testSecret, time.Hour).IssueToken(primitive.NilObjectID, "")
	assert.Error(t, err)
}
