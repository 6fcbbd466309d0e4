// Package router mounts the domain routers under /api/v1.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// RoutePrefix holds the base prefixes of the API.
type RoutePrefix struct {
	Base string
	V1   string
}

func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Router carries what domain routers share at registration time.
type Router struct {
	app  *fiber.App
	Auth Authenticator
}

// Authenticator provides the two identity middlewares.
type Authenticator interface {
	Required() fiber.Handler
	Optional() fiber.Handler
}

func NewRouter(app *fiber.App, auth Authenticator) *Router {
	return &Router{app: app, Auth: auth}
}

// RegisterRouteWithMiddleware registers one route whose middlewares run only
// for that method and path, in order, before handler. Group.Use would apply
// them to every route sharing the prefix, e.g. GET /videos inheriting the auth
// of POST /videos.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	chain := make([]fiber.Handler, 0, len(middlewares)+1)
	chain = append(chain, middlewares...)
	chain = append(chain, handler)
	// Add runs its handler argument first, then the variadic ones.
	router.Group(prefix).Add([]string{method}, path, chain[0], chain[1:]...)
}

// RegisterFunc registers the routes of one domain.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes mounts every domain under /api/v1. Callers pass each domain's
// Register so this package imports none of them.
func SetupRoutes(app *fiber.App, auth Authenticator, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app, auth)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
