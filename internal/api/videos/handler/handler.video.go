package videoshdl

import (
	"fmt"
	"os"
	"strings"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	videosdto "github.com/Kapilrajreddy/youtube-api/internal/api/videos/dto"
	videossvc "github.com/Kapilrajreddy/youtube-api/internal/api/videos/service"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
)

type VideoHandler struct {
	*basehdl.BaseHandler
	VideoService *videossvc.VideoService
}

func NewVideoHandler() (*VideoHandler, error) {
	svc, err := videossvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	return &VideoHandler{BaseHandler: basehdl.NewBaseHandler(), VideoService: svc}, nil
}

// HandleSearch serves GET /videos.
func (h *VideoHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var q videosdto.SearchQuery
		if err := h.ParseRequestQuery(c, &q); err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.VideoService.Search(h.RequestContext(c), q, h.OptionalUserID(c), page, limit)
		return h.HandleResponse(c, result, "Videos fetched successfully", err)
	})
}

func (h *VideoHandler) HandleListByChannel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.ParamObjectID(c, "userId")
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.VideoService.ListByChannel(h.RequestContext(c), userID, h.OptionalUserID(c), page, limit)
		return h.HandleResponse(c, result, "Videos fetched successfully", err)
	})
}

// HandlePublish accepts multipart fields title, description, videoFile and thumbnail.
func (h *VideoHandler) HandlePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		input := videosdto.PublishInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
		}
		if err := h.ValidateInput(&input); err != nil {
			return h.HandleError(c, err)
		}

		dir, err := uploadDir()
		if err != nil {
			return h.HandleError(c, err)
		}
		defer os.RemoveAll(dir)

		videoPath, err := saveFormFile(c, "videoFile", dir)
		if err != nil {
			return h.HandleError(c, err)
		}
		thumbPath, err := saveFormFile(c, "thumbnail", dir)
		if err != nil {
			return h.HandleError(c, err)
		}

		video, err := h.VideoService.Publish(h.RequestContext(c), actor, input, videoPath, thumbPath)
		if err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("create", "video", video.ID.Hex(), c, map[string]interface{}{"duration": video.Duration})
		return h.HandleCreated(c, video, "Video uploaded successfully", nil)
	})
}

func (h *VideoHandler) HandleGetByID(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			return h.HandleError(c, err)
		}
		detail, err := h.VideoService.GetByID(h.RequestContext(c), videoID, actor)
		return h.HandleResponse(c, detail, "Video fetched successfully", err)
	})
}

// HandleUpdate takes a multipart form with an optional thumbnail, or a JSON body without one.
func (h *VideoHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			return h.HandleError(c, err)
		}

		var (
			input     videosdto.UpdateInput
			thumbPath string
		)
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			if err := h.ParseRequestBody(c, &input); err != nil {
				return h.HandleError(c, err)
			}
		} else {
			input = videosdto.UpdateInput{Title: c.FormValue("title"), Description: c.FormValue("description")}
			if err := h.ValidateInput(&input); err != nil {
				return h.HandleError(c, err)
			}
			dir, err := uploadDir()
			if err != nil {
				return h.HandleError(c, err)
			}
			defer os.RemoveAll(dir)
			if thumbPath, err = saveFormFile(c, "thumbnail", dir); err != nil {
				return h.HandleError(c, err)
			}
		}

		video, err := h.VideoService.Update(h.RequestContext(c), videoID, actor, input, thumbPath)
		if err == nil {
			logger.LogCRUD("update", "video", videoID.Hex(), c, map[string]interface{}{"thumbnail": thumbPath != ""})
		}
		return h.HandleResponse(c, video, "Video updated successfully", err)
	})
}

func (h *VideoHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			return h.HandleError(c, err)
		}
		if _, err := h.VideoService.Delete(h.RequestContext(c), videoID, actor); err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("delete", "video", videoID.Hex(), c, nil)
		return h.HandleResponse(c, fiber.Map{"_id": videoID}, "Video deleted successfully", nil)
	})
}

func (h *VideoHandler) HandleTogglePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := h.ActingUserID(c)
		if err != nil {
			return h.HandleError(c, err)
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			return h.HandleError(c, err)
		}
		published, err := h.VideoService.TogglePublish(h.RequestContext(c), videoID, actor)
		if err != nil {
			return h.HandleError(c, err)
		}
		logger.LogCRUD("update", "video", videoID.Hex(), c, map[string]interface{}{"isPublished": published})
		return h.HandleResponse(c, fiber.Map{"isPublished": published}, "Publish status toggled successfully", nil)
	})
}
