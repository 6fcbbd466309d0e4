package usershdl

import (
	"fmt"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	usersdto "github.com/Kapilrajreddy/youtube-api/internal/api/users/dto"
	userssvc "github.com/Kapilrajreddy/youtube-api/internal/api/users/service"
	videossvc "github.com/Kapilrajreddy/youtube-api/internal/api/videos/service"
	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	*basehdl.BaseHandler
	UserService  *userssvc.UserService
	VideoService *videossvc.VideoService
}

func NewUserHandler() (*UserHandler, error) {
	users, err := userssvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	videos, err := videossvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	return &UserHandler{BaseHandler: basehdl.NewBaseHandler(), UserService: users, VideoService: videos}, nil
}

// HandleMe returns the acting user without the raw watch history.
func (h *UserHandler) HandleMe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		user, err := h.UserService.FindOneById(h.RequestContext(c), actor)
		if err != nil {
			if common.StatusOf(err) == common.StatusNotFound {
				err = common.NewNotFoundError("user not found")
			}
			return h.HandleError(c, err)
		}
		user.WatchHistory = nil
		return h.HandleResponse(c, user, "User fetched successfully", nil)
	})
}

func (h *UserHandler) HandleHistory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.VideoService.WatchHistory(h.RequestContext(c), actor, page, limit)
		return h.HandleResponse(c, result, "Watch history fetched successfully", err)
	})
}

func (h *UserHandler) HandleChannelProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params usersdto.ChannelParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			return h.HandleError(c, err)
		}
		profile, err := h.UserService.ChannelProfile(h.RequestContext(c), params.Username, h.OptionalUserID(c))
		return h.HandleResponse(c, profile, "Channel profile fetched successfully", err)
	})
}
