// Package basehdl holds the request parsing and response helpers embedded by every domain handler.
package basehdl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	"github.com/Kapilrajreddy/youtube-api/internal/api/middleware"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/utility"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// ValidateInput runs the struct validator and lists each failing field in the error details.
func (h *BaseHandler) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	err := global.Validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, describeFieldError(fe))
		}
		return common.NewValidationError(common.MsgValidationError, details...)
	}
	return common.NewValidationError(common.MsgValidationError, err.Error())
}

func describeFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "objectid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ParseRequestBody decodes a JSON body with UseNumber and validates it.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	return h.ValidateInput(input)
}

// ParseRequestParams binds URI params and validates them.
func (h *BaseHandler) ParseRequestParams(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().URI(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	return h.ValidateInput(input)
}

// ParseRequestQuery binds the query string and validates it.
func (h *BaseHandler) ParseRequestQuery(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().Query(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
	}
	return h.ValidateInput(input)
}

// ParamObjectID reads a path parameter as an ObjectID.
func (h *BaseHandler) ParamObjectID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	return utility.ParseObjectID(name, c.Params(name))
}

// ParsePagination reads page and limit; malformed values fall back to the defaults.
func (h *BaseHandler) ParsePagination(c fiber.Ctx) (page, limit int64) {
	page = utility.ParseInt64(c.Query("page"), basesvc.DefaultPage)
	limit = utility.ParseInt64(c.Query("limit"), basesvc.DefaultLimit)
	return basesvc.ClampPage(page, limit)
}

// RequestContext is the deadline-bound context every service call runs under.
func (h *BaseHandler) RequestContext(c fiber.Ctx) context.Context {
	return middleware.RequestContext(c)
}

// ActingUserID returns the authenticated user or an AuthenticationError.
func (h *BaseHandler) ActingUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := h.OptionalUserID(c)
	if id.IsZero() {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	return id, nil
}

// OptionalUserID returns NilObjectID for anonymous requests.
func (h *BaseHandler) OptionalUserID(c fiber.Ctx) primitive.ObjectID {
	raw, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok || raw == "" {
		return primitive.NilObjectID
	}
	return utility.String2ObjectID(raw)
}
