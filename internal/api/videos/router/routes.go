// Package router registers the video routes.
package router

import (
	"fmt"

	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"
	videoshdl "github.com/Kapilrajreddy/youtube-api/internal/api/videos/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := videoshdl.NewVideoHandler()
	if err != nil {
		return fmt.Errorf("create video handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}
	optional := []fiber.Handler{r.Auth.Optional()}

	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "", optional, h.HandleSearch)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "", auth, h.HandlePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/channel/:userId", optional, h.HandleListByChannel)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "GET", "/:videoId", auth, h.HandleGetByID)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/:videoId", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "DELETE", "/:videoId", auth, h.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "PATCH", "/:videoId/publish", auth, h.HandleTogglePublish)
	return nil
}
