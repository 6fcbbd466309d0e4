// Package router registers the subscription routes.
package router

import (
	"fmt"

	apirouter "github.com/Kapilrajreddy/youtube-api/internal/api/router"
	subscriptionshdl "github.com/Kapilrajreddy/youtube-api/internal/api/subscriptions/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := subscriptionshdl.NewSubscriptionHandler()
	if err != nil {
		return fmt.Errorf("create subscription handler: %w", err)
	}
	auth := []fiber.Handler{r.Auth.Required()}
	const prefix = "/subscriptions"

	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/:channelId", auth, h.HandleToggle)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/u/:username", auth, h.HandleToggleByUsername)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:channelId/subscribers", auth, h.HandleSubscribers)
	apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/user/:subscriberId", auth, h.HandleSubscribedChannels)
	return nil
}
