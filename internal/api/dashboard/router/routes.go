// Package router registers the dashboard routes.
package router

import (
	"fmt"

	dashboardhdl "github.com/Kapilrajreddy/youtube-api/internal/api/dashboard/handler"
	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := dashboardhdl.NewDashboardHandler()
	if err != nil {
		return fmt.Errorf("create dashboard handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}

	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/stats/:userId", auth, h.HandleStats)
	apirouter.RegisterRouteWithMiddleware(v1, "/dashboard", "GET", "/videos/:userId", auth, h.HandleVideos)
	return nil
}
