package middleware

import (
	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse writes data as JSON with an explicit utf-8 charset.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse renders err into the failure envelope. Kept apart from
// the handler package to avoid an import cycle.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	resp := common.NewErrorResponse(err)
	return JSONResponse(c, resp.StatusCode, resp)
}
