package utility

import (
	"testing"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseObjectID("videoId", " "+id.Hex()+" ")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseObjectID("videoId", "nope")
	require.Error(t, err)
	assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))

	_, err = ParseObjectID("videoId", primitive.NilObjectID.Hex())
	assert.Error(t, err)
}

func TestParseNumbers(t *testing.T) {
	assert.Equal(t, int64(3), ParseInt64("3", 1))
	assert.Equal(t, int64(1), ParseInt64("x", 1))
	assert.Equal(t, int64(-2), ParseInt64("-2", 1))
	assert.True(t, ParseBool("", true))
	assert.False(t, ParseBool("false", true))
}

func TestToMap(t *testing.T) {
	type doc struct {
		Title string `bson:"title"`
		Skip  string `bson:"skip,omitempty"`
	}
	m, err := ToMap(doc{Title: "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", m["title"])
	assert.NotContains(t, m, "skip")
}

func TestUnixMilli(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, int(5*time.Millisecond), time.UTC)
	assert.Equal(t, ts.UnixMilli(), UnixMilli(ts))
	assert.InDelta(t, time.Now().UnixMilli(), CurrentTimeInMilli(), 1000)
}
