package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kapilrajreddy/youtube-api/config"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiberErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fiber.ErrNotFound, http.StatusNotFound},
		{fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{fiber.ErrRequestEntityTooLarge, http.StatusBadRequest},
		{fiber.ErrUnauthorized, http.StatusUnauthorized},
		{fiber.ErrTooManyRequests, http.StatusTooManyRequests},
		{fiber.ErrServiceUnavailable, http.StatusInternalServerError},
		{common.ErrForbidden, http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, common.StatusOf(fiberError(tc.err)), tc.err.Error())
	}
}

func TestErrorHandlerRendersEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/known", func(c fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body common.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusNotFound, body.StatusCode)
	assert.NotNil(t, body.Errors)
}

func TestCorsConfig(t *testing.T) {
	prev := global.MongoDB_ServerConfig
	t.Cleanup(func() { global.MongoDB_ServerConfig = prev })

	global.MongoDB_ServerConfig = &config.Configuration{CORS_Origins: "*", CORS_AllowCredentials: true}
	cfg := corsConfig()
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.False(t, cfg.AllowCredentials, "credentials are never combined with the wildcard")

	global.MongoDB_ServerConfig = &config.Configuration{CORS_Origins: "https://a.test, https://b.test", CORS_AllowCredentials: true}
	cfg = corsConfig()
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
}

func TestLimiterStorageWithoutRedis(t *testing.T) {
	prev := global.MongoDB_ServerConfig
	t.Cleanup(func() { global.MongoDB_ServerConfig = prev })

	global.MongoDB_ServerConfig = &config.Configuration{}
	assert.Nil(t, limiterStorage())
}
