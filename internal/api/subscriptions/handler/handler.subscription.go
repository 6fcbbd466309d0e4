package subscriptionshdl

import (
	"fmt"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	subscriptionssvc "github.com/Kapilrajreddy/youtube-api/internal/api/subscriptions/service"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
)

type SubscriptionHandler struct {
	*basehdl.BaseHandler
	SubscriptionService *subscriptionssvc.SubscriptionService
}

func NewSubscriptionHandler() (*SubscriptionHandler, error) {
	svc, err := subscriptionssvc.NewSubscriptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %v", err)
	}
	return &SubscriptionHandler{BaseHandler: basehdl.NewBaseHandler(), SubscriptionService: svc}, nil
}

func (h *SubscriptionHandler) toggled(c fiber.Ctx, channel string, subscribed bool) error {
	logger.LogCRUD("toggle", "subscription", channel, c, map[string]interface{}{"subscribed": subscribed})
	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	return h.HandleResponse(c, fiber.Map{"subscribed": subscribed}, message, nil)
}

func (h *SubscriptionHandler) HandleToggle(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		channelID, err := h.ParamObjectID(c, "channelId")
		if err != nil {
			return h.HandleError(c, err)
		}
		subscribed, err := h.SubscriptionService.Toggle(h.RequestContext(c), channelID, actor)
		if err != nil {
			return h.HandleError(c, err)
		}
		return h.toggled(c, channelID.Hex(), subscribed)
	})
}

func (h *SubscriptionHandler) HandleToggleByUsername(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		username := c.Params("username")
		subscribed, err := h.SubscriptionService.ToggleByUsername(h.RequestContext(c), username, actor)
		if err != nil {
			return h.HandleError(c, err)
		}
		return h.toggled(c, username, subscribed)
	})
}

func (h *SubscriptionHandler) HandleSubscribers(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		channelID, err := h.ParamObjectID(c, "channelId")
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.SubscriptionService.Subscribers(h.RequestContext(c), channelID, page, limit)
		return h.HandleResponse(c, result, "Subscribers fetched successfully", err)
	})
}

func (h *SubscriptionHandler) HandleSubscribedChannels(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		subscriberID, err := h.ParamObjectID(c, "subscriberId")
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.SubscriptionService.SubscribedChannels(h.RequestContext(c), subscriberID, page, limit)
		return h.HandleResponse(c, result, "Subscribed channels fetched successfully", err)
	})
}
