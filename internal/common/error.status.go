package common

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK      = 200
	StatusCreated = 201

	StatusBadRequest      = 400
	StatusUnauthorized    = 401
	StatusForbidden       = 403
	StatusNotFound        = 404
	StatusConflict        = 409
	StatusTooManyRequests = 429

	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

// Response Messages
const (
	MsgSuccess = "Request completed successfully"
	MsgCreated = "Resource created successfully"

	MsgBadRequest      = "Invalid request"
	MsgUnauthorized    = "Authentication required"
	MsgForbidden       = "You are not allowed to perform this action"
	MsgNotFound        = "Resource not found"
	MsgConflict        = "Resource already exists"
	MsgTooManyRequests = "Too many requests"
	MsgInternalError   = "Something went wrong"
	MsgGatewayTimeout  = "Request timed out"

	MsgTokenMissing = "Missing access token"
	MsgTokenInvalid = "Invalid access token"
	MsgTokenExpired = "Access token expired"

	MsgValidationError = "Invalid input data"
	MsgInvalidFormat   = "Invalid data format"
	MsgRequiredFields  = "all fields are required"
)

// ErrorCode is the detailed code carried by an Error.
type ErrorCode struct {
	Code        string // e.g. AUTH_001
	Category    string
	SubCategory string
	Description string
}

var (
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Internal system error",
	}

	ErrCodeTimeout = ErrorCode{
		Code:        "SYS_002",
		Category:    "System",
		SubCategory: "Timeout",
		Description: "Deadline exceeded or request cancelled",
	}

	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Missing or invalid identity",
	}

	ErrCodeAuthOwnership = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authorization",
		SubCategory: "Ownership",
		Description: "Acting user is not the resource owner",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Missing or malformed input",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Malformed identifier or value",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Database connection error",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Referenced entity does not exist",
	}

	ErrCodeDatabaseDuplicate = ErrorCode{
		Code:        "DB_003",
		Category:    "Database",
		SubCategory: "Duplicate",
		Description: "Unique constraint violated",
	}

	ErrCodeRateLimit = ErrorCode{
		Code:        "SYS_003",
		Category:    "System",
		SubCategory: "RateLimit",
		Description: "Request rate exceeded",
	}

	ErrCodeStorage = ErrorCode{
		Code:        "MEDIA_001",
		Category:    "Storage",
		SubCategory: "Object",
		Description: "Object storage failure",
	}
)

// Error is the single error type rendered by the response adapter.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    any
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on code and status so wrapped sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code && e.StatusCode == t.StatusCode
}

// NewError creates an Error with every field set.
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// NewValidationError is a 400. details become the envelope's errors list.
func NewValidationError(message string, details ...string) error {
	if message == "" {
		message = MsgValidationError
	}
	var d any
	if len(details) > 0 {
		d = details
	}
	return NewError(ErrCodeValidationInput, message, StatusBadRequest, d)
}

// NewInvalidIDError reports a malformed ObjectID parameter.
func NewInvalidIDError(name string) error {
	return NewError(ErrCodeValidationFormat, fmt.Sprintf("Invalid %s", name), StatusBadRequest, nil)
}

// NewAuthenticationError is a 401.
func NewAuthenticationError(message string) error {
	if message == "" {
		message = MsgUnauthorized
	}
	return NewError(ErrCodeAuthToken, message, StatusUnauthorized, nil)
}

// NewAuthorizationError is a 403 raised when the acting user does not own the resource.
func NewAuthorizationError(message string) error {
	if message == "" {
		message = MsgForbidden
	}
	return NewError(ErrCodeAuthOwnership, message, StatusForbidden, nil)
}

// NewNotFoundError is a 404.
func NewNotFoundError(message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return NewError(ErrCodeDatabaseQuery, message, StatusNotFound, nil)
}

// NewInternalError is a 500 wrapping cause in Details.
func NewInternalError(message string, cause error) error {
	if message == "" {
		message = MsgInternalError
	}
	return NewError(ErrCodeInternalServer, message, StatusInternalServerError, cause)
}

var (
	ErrTokenMissing = NewError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrTokenExpired = NewError(ErrCodeAuthToken, MsgTokenExpired, StatusUnauthorized, nil)

	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, MsgRequiredFields, StatusBadRequest, nil)

	ErrNotFound    = NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)
	ErrForbidden   = NewError(ErrCodeAuthOwnership, MsgForbidden, StatusForbidden, nil)
	ErrDuplicate   = NewError(ErrCodeDatabaseDuplicate, MsgConflict, StatusConflict, nil)
	ErrConnection  = NewError(ErrCodeDatabaseConnection, "Database connection error", StatusServiceUnavailable, nil)
	ErrTimeout     = NewError(ErrCodeTimeout, MsgGatewayTimeout, StatusGatewayTimeout, nil)
	ErrInternal    = NewError(ErrCodeInternalServer, MsgInternalError, StatusInternalServerError, nil)
	ErrRateLimited = NewError(ErrCodeRateLimit, MsgTooManyRequests, StatusTooManyRequests, nil)
	ErrMediaUpload = NewError(ErrCodeStorage, "Failed to upload media", StatusInternalServerError, nil)
)

// ConvertMongoError maps driver and context errors onto the taxonomy.
// Errors that already are *Error pass through unchanged.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), mongo.IsTimeout(err):
		return NewError(ErrCodeTimeout, MsgGatewayTimeout, StatusGatewayTimeout, err)
	case mongo.IsDuplicateKeyError(err):
		return NewError(ErrCodeDatabaseDuplicate, MsgConflict, StatusConflict, err)
	case mongo.IsNetworkError(err):
		return NewError(ErrCodeDatabaseConnection, "Database network error", StatusServiceUnavailable, err)
	}

	return NewError(ErrCodeInternalServer, MsgInternalError, StatusInternalServerError, err)
}

// StatusOf returns the HTTP status an error renders as.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return StatusInternalServerError
}
