package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// ContextKey types values the logger reads back from a context.Context.
type ContextKey string

const (
	RequestIDKey ContextKey = "requestID"
	UserIDKey    ContextKey = "userID"
	ServiceKey   ContextKey = "service"
)

// WithContext returns an app entry carrying request and user ids found in ctx.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		entry = entry.WithField("request_id", requestID)
	}
	if userID := ctx.Value(UserIDKey); userID != nil {
		entry = entry.WithField("user_id", userID)
	}
	if service := ctx.Value(ServiceKey); service != nil {
		entry = entry.WithField("service", service)
	}
	return entry
}

// RequestID reads the id set by the requestid middleware, falling back to the headers.
func RequestID(c fiber.Ctx) string {
	if rid := requestid.FromContext(c); rid != "" {
		return rid
	}
	if rid := c.Get(fiber.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// WithRequest returns an app entry with request id, method, path and ip.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := logrus.NewEntry(GetAppLogger())

	if requestID := RequestID(c); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}

	return entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
}

func WithFields(fields map[string]interface{}) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields(fields))
}

func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}

// WithModule tags the entry with a module name such as "videos" or "media".
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

func WithCollection(collection string) *logrus.Entry {
	return GetAppLogger().WithField("collection", collection)
}

func WithModuleAndCollection(module, collection string) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"module":     module,
		"collection": collection,
	})
}

// WithRequestInfo is WithRequest plus optional module and collection.
func WithRequestInfo(c fiber.Ctx, module, collection string) *logrus.Entry {
	entry := WithRequest(c)
	if module != "" {
		entry = entry.WithField("module", module)
	}
	if collection != "" {
		entry = entry.WithField("collection", collection)
	}
	return entry
}
