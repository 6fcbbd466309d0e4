// Package router registers the tweet routes.
package router

import (
	"fmt"

	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"
	tweetshdl "github.com/Kapilrajreddy/youtube-api/internal/api/tweets/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := tweetshdl.NewTweetHandler()
	if err != nil {
		return fmt.Errorf("create tweet handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}

	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "POST", "", auth, h.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "PATCH", "/:tweetId", auth, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "DELETE", "/:tweetId", auth, h.HandleDelete)
	apirouter.RegisterRouteWithMiddleware(v1, "/tweets", "GET", "/user/:userId", auth, h.HandleListByUser)
	return nil
}
