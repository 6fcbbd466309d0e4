package playlistshdl

import (
	"context"
	"fmt"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	playlistsdto "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/dto"
	playlistsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/models"
	playlistssvc "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/service"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlaylistHandler struct {
	*basehdl.BaseHandler
	PlaylistService *playlistssvc.PlaylistService
}

func NewPlaylistHandler() (*PlaylistHandler, error) {
	svc, err := playlistssvc.NewPlaylistService()
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist service: %v", err)
	}
	return &PlaylistHandler{BaseHandler: basehdl.NewBaseHandler(), PlaylistService: svc}, nil
}

func (h *PlaylistHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		var input playlistsdto.PlaylistCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleError(c, err)
		}
		playlist, err := h.PlaylistService.Create(h.RequestContext(c), actor, input)
		if err == nil {
			logger.LogCRUD("create", "playlist", playlist.ID.Hex(), c, nil)
		}
		return h.HandleCreated(c, playlist, "Playlist created successfully", err)
	})
}

func (h *PlaylistHandler) HandleGetByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			return h.HandleError(c, err)
		}
		view, err := h.PlaylistService.GetByID(h.RequestContext(c), playlistID, h.OptionalUserID(c))
		return h.HandleResponse(c, view, "Playlist fetched successfully", err)
	})
}

func (h *PlaylistHandler) HandleListByUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.ParamObjectID(c, "userId")
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.PlaylistService.ListByUser(h.RequestContext(c), userID, h.OptionalUserID(c), page, limit)
		return h.HandleResponse(c, result, "Playlists fetched successfully", err)
	})
}

func (h *PlaylistHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			return h.HandleError(c, err)
		}
		var input playlistsdto.PlaylistUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleError(c, err)
		}
		playlist, err := h.PlaylistService.Update(h.RequestContext(c), playlistID, actor, input)
		if err == nil {
			logger.LogCRUD("update", "playlist", playlistID.Hex(), c, nil)
		}
		return h.HandleResponse(c, playlist, "Playlist updated successfully", err)
	})
}

func (h *PlaylistHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			return h.HandleError(c, err)
		}
		if _, err := h.PlaylistService.Delete(h.RequestContext(c), playlistID, actor); err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("delete", "playlist", playlistID.Hex(), c, nil)
		return h.HandleResponse(c, fiber.Map{"_id": playlistID}, "Playlist deleted successfully", nil)
	})
}

type videoOp func(ctx context.Context, playlistID, videoID, actor primitive.ObjectID) (playlistsmodels.Playlist, error)

func (h *PlaylistHandler) videoChange(c fiber.Ctx, action, message string, op videoOp) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			return h.HandleError(c, err)
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			return h.HandleError(c, err)
		}
		playlist, err := op(h.RequestContext(c), playlistID, videoID, actor)
		if err == nil {
			logger.LogCRUD(action, "playlist", playlistID.Hex(), c, map[string]interface{}{"video": videoID.Hex()})
		}
		return h.HandleResponse(c, playlist, message, err)
	})
}

func (h *PlaylistHandler) HandleAddVideo(c fiber.Ctx) error {
	return h.videoChange(c, "add_video", "Video added to playlist", h.PlaylistService.AddVideo)
}

func (h *PlaylistHandler) HandleRemoveVideo(c fiber.Ctx) error {
	return h.videoChange(c, "remove_video", "Video removed from playlist", h.PlaylistService.RemoveVideo)
}
