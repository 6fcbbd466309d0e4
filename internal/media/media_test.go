package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindVideo, KindOf("/tmp/clip.MP4"))
	assert.Equal(t, KindVideo, KindOf("a.webm"))
	assert.Equal(t, KindImage, KindOf("thumb.png"))
	assert.Equal(t, KindImage, KindOf("noext"))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey(KindVideo, "/uploads/My Holiday Clip!.MP4")
	assert.Regexp(t, regexp.MustCompile(`^video/my-holiday-clip-[0-9a-f-]{36}\.mp4$`), key)

	other := ObjectKey(KindVideo, "/uploads/My Holiday Clip!.MP4")
	assert.NotEqual(t, key, other)

	assert.Regexp(t, `^image/file-[0-9a-f-]{36}\.png$`, ObjectKey(KindImage, "/x/!!!.png"))
}

func TestParseProbe(t *testing.T) {
	d, err := parseProbe(`{"format":{"duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	_, err = parseProbe(`{"format":{}}`)
	assert.Error(t, err)
	_, err = parseProbe(`not json`)
	assert.Error(t, err)
}

func TestProbeDuration(t *testing.T) {
	ok := func(string) (float64, error) { return 3.5, nil }
	fail := func(string) (float64, error) { return 0, errors.New("no ffprobe") }

	assert.Equal(t, 3.5, probeDuration(ok, KindVideo, "a.mp4"))
	assert.Equal(t, 0.0, probeDuration(ok, KindImage, "a.png"))
	assert.Equal(t, 0.0, probeDuration(fail, KindVideo, "a.mp4"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("a.PNG"))
	assert.Equal(t, "application/octet-stream", ContentType("a.unknownext"))
}

type recordingStore struct {
	deleted []string
	err     error
}

func (s *recordingStore) Upload(context.Context, string) (*Asset, error) { return nil, nil }

func (s *recordingStore) Delete(_ context.Context, id string, _ ResourceKind) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func TestDeleteBestEffort(t *testing.T) {
	store := &recordingStore{err: errors.New("boom")}
	DeleteBestEffort(context.Background(), store, "image/x.png", KindImage)
	DeleteBestEffort(context.Background(), store, "", KindImage)
	DeleteBestEffort(context.Background(), nil, "image/y.png", KindImage)
	assert.Equal(t, []string{"image/x.png"}, store.deleted)
}

func TestRemoveLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	removeLocal(path)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	removeLocal(path)
}
