package middleware

import (
	"context"
	"strings"

	authsvc "github.com/Kapilrajreddy/youtube-api/internal/api/auth/service"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocalUserID is where the resolved acting user id (hex) is stored.
const LocalUserID = "user_id"

// UserChecker reports whether a user still exists.
type UserChecker interface {
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// AuthManager resolves the acting user from a bearer token.
type AuthManager struct {
	tokens *authsvc.TokenService
	users  UserChecker
}

func NewAuthManager(tokens *authsvc.TokenService, users UserChecker) *AuthManager {
	return &AuthManager{tokens: tokens, users: users}
}

// Required rejects requests without a valid token for an existing user with 401.
func (am *AuthManager) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			logger.WithRequest(c).Warn("missing or malformed Authorization header")
			return HandleErrorResponse(c, common.ErrTokenMissing)
		}
		id, err := am.resolve(c, raw)
		if err != nil {
			return HandleErrorResponse(c, err)
		}
		c.Locals(LocalUserID, id.Hex())
		return c.Next()
	}
}

// Optional sets the acting user when a valid token is present and lets anonymous requests through.
// A token that is present but invalid is still rejected.
func (am *AuthManager) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		id, err := am.resolve(c, raw)
		if err != nil {
			return HandleErrorResponse(c, err)
		}
		c.Locals(LocalUserID, id.Hex())
		return c.Next()
	}
}

func (am *AuthManager) resolve(c fiber.Ctx, raw string) (primitive.ObjectID, error) {
	id, err := am.tokens.ParseToken(raw)
	if err != nil {
		logger.WithRequest(c).WithError(err).Warn("token rejected")
		return primitive.NilObjectID, err
	}
	if am.users == nil {
		return id, nil
	}
	exists, err := am.users.UserExists(RequestContext(c), id)
	if err != nil {
		return primitive.NilObjectID, common.ConvertMongoError(err)
	}
	if !exists {
		logger.WithRequest(c).WithField("user_id", id.Hex()).Warn("token subject no longer exists")
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return id, nil
}

func bearerToken(c fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
