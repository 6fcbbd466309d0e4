// Package router registers the playlist routes.
package router

import (
	"fmt"

	playlistshdl "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/handler"
	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := playlistshdl.NewPlaylistHandler()
	if err != nil {
		return fmt.Errorf("create playlist handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}
	const prefix = "/playlists"

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "", auth, h.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/user/:userId", auth, h.HandleListByUser)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:playlistId", auth, h.HandleGetByID)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "PATCH", "/:playlistId", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:playlistId", auth, h.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "PATCH", "/:playlistId/videos/:videoId", auth, h.HandleAddVideo)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:playlistId/videos/:videoId", auth, h.HandleRemoveVideo)
	return nil
}
