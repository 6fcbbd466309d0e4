package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Content string `validate:"required,notblank,no_xss"`
	VideoID string `validate:"omitempty,objectid"`
}

func TestCustomRules(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Struct(sample{Content: "nice video", VideoID: "64b7f9c2e1a4b2c3d4e5f601"}))
	assert.Error(t, Validate.Struct(sample{Content: "   "}))
	assert.Error(t, Validate.Struct(sample{Content: "<script>alert(1)</script>"}))
	assert.Error(t, Validate.Struct(sample{Content: "ok", VideoID: "not-an-id"}))
}

func TestExistsWithoutCollection(t *testing.T) {
	InitValidator()
	type ref struct {
		ID string `validate:"exists=unknown_collection"`
	}
	assert.Error(t, Validate.Struct(ref{ID: "64b7f9c2e1a4b2c3d4e5f601"}))
	assert.NoError(t, Validate.Struct(ref{}))
}

func TestCollectionNames(t *testing.T) {
	assert.Equal(t,
		[]string{"users", "videos", "comments", "tweets", "likes", "subscriptions", "playlists"},
		CollectionNames())
}
