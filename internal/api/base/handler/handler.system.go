package basehdl

import (
	"context"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"github.com/gofiber/fiber/v3"
)

type SystemHandler struct {
	*BaseHandler
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{BaseHandler: NewBaseHandler()}
}

// HandleHealth pings MongoDB and reports 503 when it is unreachable.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(h.RequestContext(c), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	data := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	switch {
	case global.MongoDB_Session == nil:
		data["status"] = "degraded"
		services["database"] = "not_initialized"
	case global.MongoDB_Session.Ping(ctx, nil) != nil:
		data["status"] = "degraded"
		services["database"] = "error"
		return JSONResponse(c, common.StatusServiceUnavailable, common.Response{
			StatusCode: common.StatusServiceUnavailable,
			Data:       data,
			Message:    "Service unavailable",
			Success:    false,
		})
	default:
		services["database"] = "ok"
	}
	return h.HandleResponse(c, data, "", nil)
}
