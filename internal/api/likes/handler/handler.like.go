package likeshdl

import (
	"context"
	"fmt"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	likessvc "github.com/Kapilrajreddy/youtube-api/internal/api/likes/service"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LikeHandler struct {
	*basehdl.BaseHandler
	LikeService *likessvc.LikeService
}

func NewLikeHandler() (*LikeHandler, error) {
	svc, err := likessvc.NewLikeService()
	if err != nil {
		return nil, fmt.Errorf("failed to create like service: %v", err)
	}
	return &LikeHandler{BaseHandler: basehdl.NewBaseHandler(), LikeService: svc}, nil
}

type toggleFunc func(ctx context.Context, targetID, actor primitive.ObjectID) (bool, error)

func (h *LikeHandler) toggle(c fiber.Ctx, param, kind string, fn toggleFunc) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		targetID, err := h.ParamObjectID(c, param)
		if err != nil {
			return h.HandleError(c, err)
		}
		liked, err := fn(h.RequestContext(c), targetID, actor)
		if err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("toggle", "like", targetID.Hex(), c, map[string]interface{}{"target": kind, "liked": liked})
		message := "Like removed successfully"
		if liked {
			message = "Liked successfully"
		}
		return h.HandleResponse(c, fiber.Map{"liked": liked}, message, nil)
	})
}

func (h *LikeHandler) HandleToggleVideoLike(c fiber.Ctx) error {
	return h.toggle(c, "videoId", "video", h.LikeService.ToggleVideoLike)
}

func (h *LikeHandler) HandleToggleCommentLike(c fiber.Ctx) error {
	return h.toggle(c, "commentId", "comment", h.LikeService.ToggleCommentLike)
}

func (h *LikeHandler) HandleToggleTweetLike(c fiber.Ctx) error {
	return h.toggle(c, "tweetId", "tweet", h.LikeService.ToggleTweetLike)
}

func (h *LikeHandler) HandleLikedVideos(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.LikeService.LikedVideos(h.RequestContext(c), actor, page, limit)
		return h.HandleResponse(c, result, "Liked videos fetched successfully", err)
	})
}
