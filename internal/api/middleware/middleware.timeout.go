package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

// LocalRequestContext is the Locals key holding the deadline-bound request context.
const LocalRequestContext = "request_context"

// Timeout stores a context that expires after d under LocalRequestContext.
// fiber.Ctx satisfies context.Context but its Deadline and Done are no-ops, so
// handlers read RequestContext(c) instead. Driver calls then fail with
// context.DeadlineExceeded, which the error envelope renders as 504.
//
// The context is not derived from c: the Ctx is recycled once the handler
// returns, while event handlers may still hold the context.
func Timeout(d time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()
		c.Locals(LocalRequestContext, ctx)
		return c.Next()
	}
}

// RequestContext returns the context stored by Timeout, or context.Background
// when the middleware is not mounted.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalRequestContext).(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}
