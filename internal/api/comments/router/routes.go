// Package router registers the comment routes.
package router

import (
	"fmt"

	commentshdl "github.com/Kapilrajreddy/youtube-api/internal/api/comments/handler"
	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := commentshdl.NewCommentHandler()
	if err != nil {
		return fmt.Errorf("create comment handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}
	const prefix = "/comments"

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:videoId", auth, h.HandleListVideoComments)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/:videoId", auth, h.HandleAddVideoComment)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "PATCH", "/:commentId", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:commentId", auth, h.HandleDelete)

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "PATCH", "/c/:commentId", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/c/:commentId", auth, h.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/c/:commentId/replies", auth, h.HandleListReplies)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/c/:commentId/replies", auth, h.HandleAddReply)

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/tweet/:tweetId", auth, h.HandleListTweetComments)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/tweet/:tweetId", auth, h.HandleAddTweetComment)
	return nil
}
