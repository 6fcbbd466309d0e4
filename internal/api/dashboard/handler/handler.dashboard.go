package dashboardhdl

import (
	"fmt"

	basehdl "github.com/Kapilrajreddy/youtube-api/internal/api/base/handler"
	dashboardsvc "github.com/Kapilrajreddy/youtube-api/internal/api/dashboard/service"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	*basehdl.BaseHandler
	DashboardService *dashboardsvc.DashboardService
}

func NewDashboardHandler() (*DashboardHandler, error) {
	svc, err := dashboardsvc.NewDashboardService()
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %v", err)
	}
	return &DashboardHandler{BaseHandler: basehdl.NewBaseHandler(), DashboardService: svc}, nil
}

func (h *DashboardHandler) HandleStats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.ParamObjectID(c, "userId")
		if err != nil {
			return h.HandleError(c, err)
		}
		stats, err := h.DashboardService.Stats(h.RequestContext(c), userID)
		return h.HandleResponse(c, stats, "Channel stats fetched successfully", err)
	})
}

func (h *DashboardHandler) HandleVideos(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.ParamObjectID(c, "userId")
		if err != nil {
			return h.HandleError(c, err)
		}
		page, limit := h.ParsePagination(c)
		result, err := h.DashboardService.Videos(h.RequestContext(c), userID, h.OptionalUserID(c), page, limit)
		return h.HandleResponse(c, result, "Channel videos fetched successfully", err)
	})
}
