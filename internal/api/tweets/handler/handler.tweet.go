package tweetshdl

import (
	"fmt"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	tweetsdto "github.com/Kapilrajreddy/youtube-api/internal/api/tweets/dto"
	tweetssvc "github.com/Kapilrajreddy/youtube-api/internal/api/tweets/service"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
)

type TweetHandler struct {
	*basehdl.BaseHandler
	TweetService *tweetssvc.TweetService
}

func NewTweetHandler() (*TweetHandler, error) {
	svc, err := tweetssvc.NewTweetService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tweet service: %v", err)
	}
	return &TweetHandler{BaseHandler: basehdl.NewBaseHandler(), TweetService: svc}, nil
}

func (h *TweetHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		var input tweetsdto.TweetInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleError(c, err)
		}
		tweet, err := h.TweetService.Create(h.RequestContext(c), actor, input)
		if err == nil {
			logger.LogCRUD("create", "tweet", tweet.ID.Hex(), c, nil)
		}
		return h.HandleCreated(c, tweet, "Tweet created successfully", err)
	})
}

func (h *TweetHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		tweetID, err := h.ParamObjectID(c, "tweetId")
		if err != nil {
			return h.HandleError(c, err)
		}
		var input tweetsdto.TweetInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleError(c, err)
		}
		tweet, err := h.TweetService.Update(h.RequestContext(c), tweetID, actor, input)
		if err == nil {
			logger.LogCRUD("update", "tweet", tweetID.Hex(), c, nil)
		}
		return h.HandleResponse(c, tweet, "Tweet updated successfully", err)
	})
}

func (h *TweetHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		tweetID, err := h.ParamObjectID(c, "tweetId")
		if err != nil {
			return h.HandleError(c, err)
		}
		if _, err := h.TweetService.Delete(h.RequestContext(c), tweetID, actor); err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("delete", "tweet", tweetID.Hex(), c, nil)
		return h.HandleResponse(c, fiber.Map{"_id": tweetID}, "Tweet deleted successfully", nil)
	})
}

func (h *TweetHandler) HandleListByUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.ParamObjectID(c, "userId")
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.TweetService.ListByUser(h.RequestContext(c), userID, h.OptionalUserID(c), page, limit)
		return h.HandleResponse(c, result, "Tweets fetched successfully", err)
	})
}
