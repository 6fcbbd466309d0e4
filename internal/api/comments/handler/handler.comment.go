package commentshdl

import (
	"fmt"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	commentsdto "github.com/Kapilrajreddy/youtube-api/internal/api/comments/dto"
	commentssvc "github.com/Kapilrajreddy/youtube-api/internal/api/comments/service"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentHandler struct {
	*basehdl.BaseHandler
	CommentService *commentssvc.CommentService
}

func NewCommentHandler() (*CommentHandler, error) {
	svc, err := commentssvc.NewCommentService()
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %v", err)
	}
	return &CommentHandler{BaseHandler: basehdl.NewBaseHandler(), CommentService: svc}, nil
}

func (h *CommentHandler) list(c fiber.Ctx, param string, build func(primitive.ObjectID) basemodels.Target) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, param)
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.CommentService.List(h.RequestContext(c), build(id), h.OptionalUserID(c), page, limit)
		return h.HandleResponse(c, result, "Comments fetched successfully", err)
	})
}

type addFunc func(svc *commentssvc.CommentService, c fiber.Ctx, targetID, actor primitive.ObjectID, input commentsdto.CommentInput) (interface{}, error)

func (h *CommentHandler) add(c fiber.Ctx, param string, fn addFunc) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		targetID, err := h.ParamObjectID(c, param)
		if err != nil {
			return h.HandleError(c, err)
		}
		var input commentsdto.CommentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleError(c, err)
		}
		created, err := fn(h.CommentService, c, targetID, actor, input)
		if err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("create", "comment", "", c, map[string]interface{}{param: targetID.Hex()})
		return h.HandleCreated(c, created, "Comment added successfully", nil)
	})
}

func (h *CommentHandler) HandleListVideoComments(c fiber.Ctx) error {
	return h.list(c, "videoId", basemodels.VideoTarget)
}

func (h *CommentHandler) HandleListTweetComments(c fiber.Ctx) error {
	return h.list(c, "tweetId", basemodels.TweetTarget)
}

func (h *CommentHandler) HandleListReplies(c fiber.Ctx) error {
	return h.list(c, "commentId", basemodels.CommentTarget)
}

func (h *CommentHandler) HandleAddVideoComment(c fiber.Ctx) error {
	return h.add(c, "videoId", func(svc *commentssvc.CommentService, c fiber.Ctx, id, actor primitive.ObjectID, in commentsdto.CommentInput) (interface{}, error) {
		return svc.AddVideoComment(h.RequestContext(c), id, actor, in)
	})
}

func (h *CommentHandler) HandleAddTweetComment(c fiber.Ctx) error {
	return h.add(c, "tweetId", func(svc *commentssvc.CommentService, c fiber.Ctx, id, actor primitive.ObjectID, in commentsdto.CommentInput) (interface{}, error) {
		return svc.AddTweetComment(h.RequestContext(c), id, actor, in)
	})
}

func (h *CommentHandler) HandleAddReply(c fiber.Ctx) error {
	return h.add(c, "commentId", func(svc *commentssvc.CommentService, c fiber.Ctx, id, actor primitive.ObjectID, in commentsdto.CommentInput) (interface{}, error) {
		return svc.AddReply(h.RequestContext(c), id, actor, in)
	})
}

func (h *CommentHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		commentID, err := h.ParamObjectID(c, "commentId")
		if err != nil {
			return h.HandleError(c, err)
		}
		var input commentsdto.CommentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleError(c, err)
		}
		updated, err := h.CommentService.Update(h.RequestContext(c), commentID, actor, input)
		if err == nil {
			logger.LogCRUD("update", "comment", commentID.Hex(), c, nil)
		}
		return h.HandleResponse(c, updated, "Comment updated successfully", err)
	})
}

func (h *CommentHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		commentID, err := h.ParamObjectID(c, "commentId")
		if err != nil {
			return h.HandleError(c, err)
		}
		if _, err := h.CommentService.Delete(h.RequestContext(c), commentID, actor); err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("delete", "comment", commentID.Hex(), c, nil)
		return h.HandleResponse(c, fiber.Map{"_id": commentID}, "Comment deleted successfully", nil)
	})
}
