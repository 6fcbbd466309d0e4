package utility

import (
	"strconv"
	"strings"

	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID returns NilObjectID for malformed input.
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ParseObjectID parses a path or body id and names the field in the validation error.
func ParseObjectID(name, value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value))
	if err != nil || id.IsZero() {
		return primitive.NilObjectID, common.NewInvalidIDError(name)
	}
	return id, nil
}

// ParseInt64 returns def when s is empty or not a number.
func ParseInt64(s string, def int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// ParseBool returns def when s is empty or not a boolean.
func ParseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}
