// Package router registers the user routes.
package router

import (
	"fmt"

	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"
	usershdl "github.com/Kapilrajreddy/youtube-api/internal/api/users/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := usershdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("create user handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}

	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/me", auth, h.HandleMe)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/history", auth, h.HandleHistory)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/c/:username", auth, h.HandleChannelProfile)
	return nil
}
