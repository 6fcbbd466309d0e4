package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(cfg *LogConfig, out *syncBuffer) (*logrus.Logger, *AsyncHook) {
	l := logrus.New()
	l.SetOutput(bytes.NewBuffer(nil))
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.AddHook(NewFilterHook(cfg))
	hook := NewAsyncHook(out, 16)
	l.AddHook(hook)
	return l, hook
}

func TestAsyncHookWritesEntries(t *testing.T) {
	out := &syncBuffer{}
	l, hook := newTestLogger(&LogConfig{}, out)

	l.WithField("module", "videos").Info("video published")
	require.NoError(t, hook.Close())

	assert.Contains(t, out.String(), "video published")
	assert.Contains(t, out.String(), "level=info")
	assert.Contains(t, out.String(), "module=videos")
}

func TestFilterHookDropsOtherModules(t *testing.T) {
	out := &syncBuffer{}
	l, hook := newTestLogger(&LogConfig{FilterModules: "likes, comments"}, out)

	l.WithField("module", "videos").Info("hidden")
	l.WithField("module", "LIKES").Info("visible like")
	l.Info("no module field")
	require.NoError(t, hook.Close())

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "visible like")
	assert.Contains(t, out.String(), "no module field")
	assert.NotContains(t, out.String(), filteredKey)
}

func TestFilterHookLevelsAndEndpoints(t *testing.T) {
	out := &syncBuffer{}
	l, hook := newTestLogger(&LogConfig{FilterLogTypes: "error", FilterEndpoints: "/api/v1/videos"}, out)

	l.WithField("path", "/api/v1/videos/1").Error("video error")
	l.WithField("path", "/api/v1/comments/1").Error("comment error")
	l.WithField("path", "/api/v1/videos/1").Info("video info")
	require.NoError(t, hook.Close())

	assert.Contains(t, out.String(), "video error")
	assert.NotContains(t, out.String(), "comment error")
	assert.NotContains(t, out.String(), "video info")
}

func TestParseFilter(t *testing.T) {
	assert.Nil(t, parseFilter(""))
	assert.Nil(t, parseFilter("*"))
	assert.Nil(t, parseFilter("a,*"))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, parseFilter(" A , b,"))
}

func TestAsyncHookAfterCloseWritesSynchronously(t *testing.T) {
	out := &syncBuffer{}
	l, hook := newTestLogger(&LogConfig{}, out)
	require.NoError(t, hook.Close())
	require.NoError(t, hook.Close())

	l.Warn("late entry")
	assert.Contains(t, out.String(), "late entry")
}

func TestRequestIDFromMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "rid-1" }}))
	app.Get("/", func(c fiber.Ctx) error {
		entry := WithRequest(c)
		return c.SendString(RequestID(c) + "|" + entry.Data["request_id"].(string))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "rid-1|rid-1", body.String())
}
