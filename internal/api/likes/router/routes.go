// Package router registers the like routes.
package router

import (
	"fmt"

	likeshdl "github.com/Kapilrajreddy/youtube-api/internal/api/likes/handler"
	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := likeshdl.NewLikeHandler()
	if err != nil {
		return fmt.Errorf("create like handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}

	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/video/:videoId", auth, h.HandleToggleVideoLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/comment/:commentId", auth, h.HandleToggleCommentLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "POST", "/tweet/:tweetId", auth, h.HandleToggleTweetLike)
	apirouter.RegisterRouteWithMiddleware(v1, "/likes", "GET", "/videos", auth, h.HandleLikedVideos)
	return nil
}
