package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/Kapilrajreddy/youtube-api/internal/api/auth/service"
	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers map[primitive.ObjectID]bool

func (f fakeUsers) UserExists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f[id], nil
}

func newAuthApp(t *testing.T, users fakeUsers) (*fiber.App, *authsvc.TokenService) {
	t.Helper()
	tokens := authsvc.NewTokenService("0123456789abcdef0123", time.Hour)
	am := NewAuthManager(tokens, users)

	app := fiber.New()
	echo := func(c fiber.Ctx) error {
		id, _ := c.Locals(LocalUserID).(string)
		return c.SendString(id)
	}
	app.Get("/required", am.Required(), echo)
	app.Get("/optional", am.Optional(), echo)
	return app, tokens
}

func decodeError(t *testing.T, resp *http.Response) common.ErrorResponse {
	t.Helper()
	var body common.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRequiredRejectsMissingToken(t *testing.T) {
	app, _ := newAuthApp(t, fakeUsers{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/required", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeError(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.NotNil(t, body.Errors)
}

func TestRequiredAcceptsValidToken(t *testing.T) {
	id := primitive.NewObjectID()
	app, tokens := newAuthApp(t, fakeUsers{id: true})
	raw, err := tokens.IssueToken(id, "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequiredRejectsDeletedUser(t *testing.T) {
	app, tokens := newAuthApp(t, fakeUsers{})
	raw, err := tokens.IssueToken(primitive.NewObjectID(), "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAllowsAnonymous(t *testing.T) {
	app, _ := newAuthApp(t, fakeUsers{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/optional", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTimeoutSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Get("/", Timeout(50*time.Millisecond), func(c fiber.Ctx) error {
		deadline, ok := RequestContext(c).Deadline()
		if !ok || time.Until(deadline) > 50*time.Millisecond {
			return errors.New("no deadline")
		}
		return c.SendStatus(http.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestTimeoutExpiresRequestContext(t *testing.T) {
	app := fiber.New()
	app.Get("/", Timeout(10*time.Millisecond), func(c fiber.Ctx) error {
		ctx := RequestContext(c)
		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ctx.Err()
			}
			return c.SendStatus(http.StatusGatewayTimeout)
		case <-time.After(500 * time.Millisecond):
			return c.SendStatus(http.StatusOK)
		}
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}

func TestRequestContextWithoutTimeout(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		if _, ok := RequestContext(c).Deadline(); ok {
			return errors.New("unexpected deadline")
		}
		return c.SendStatus(http.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
