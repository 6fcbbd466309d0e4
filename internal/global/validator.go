package global

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitValidator creates the shared validator and registers custom rules.
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("objectid", validateObjectID)
	_ = Validate.RegisterValidation("notblank", validateNotBlank)
	_ = Validate.RegisterValidation("exists", validateExists)
}

func validateNoXSS(fl validator.FieldLevel) bool {
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"document.cookie",
		"<iframe",
		"<object",
		"<embed",
	}

	value := strings.ToLower(fl.Field().String())
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateObjectID accepts a 24 char hex string.
func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

// validateNotBlank rejects strings that are empty after trimming.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateExists checks that the ObjectID exists in a registered collection.
// Format: validate:"exists=videos"
func validateExists(fl validator.FieldLevel) bool {
	collectionName := fl.Param()
	if collectionName == "" {
		return false
	}

	var objID primitive.ObjectID
	switch v := fl.Field().Interface().(type) {
	case string:
		if v == "" {
			return true
		}
		var err error
		if objID, err = primitive.ObjectIDFromHex(v); err != nil {
			return false
		}
	case primitive.ObjectID:
		if v.IsZero() {
			return true
		}
		objID = v
	default:
		return false
	}

	collection, exist := RegistryCollections.Get(collectionName)
	if !exist {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	count, err := collection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return false
	}
	return count > 0
}
