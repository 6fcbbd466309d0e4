package basehdl

import (
	"fmt"
	"runtime/debug"

	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse writes data as JSON with an explicit utf-8 charset.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler runs handler and turns a panic into a 500 envelope.
func (h *BaseHandler) SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).Errorf("handler panic: %v", r)
			err = h.HandleError(c, common.NewInternalError("", fmt.Errorf("%v", r)))
		}
	}()
	return handler()
}

// HandleResponse renders data with status 200 or, when err is set, the failure envelope.
func (h *BaseHandler) HandleResponse(c fiber.Ctx, data interface{}, message string, err error) error {
	return h.HandleStatus(c, common.StatusOK, data, message, err)
}

// HandleCreated is HandleResponse with status 201.
func (h *BaseHandler) HandleCreated(c fiber.Ctx, data interface{}, message string, err error) error {
	return h.HandleStatus(c, common.StatusCreated, data, message, err)
}

func (h *BaseHandler) HandleStatus(c fiber.Ctx, status int, data interface{}, message string, err error) error {
	if err != nil {
		return h.HandleError(c, err)
	}
	return JSONResponse(c, status, common.NewResponse(status, data, message))
}

// HandleError logs server-side failures and writes the failure envelope.
func (h *BaseHandler) HandleError(c fiber.Ctx, err error) error {
	resp := common.NewErrorResponse(err)
	if resp.StatusCode >= common.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).Error("request failed")
	}
	return JSONResponse(c, resp.StatusCode, resp)
}
