package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTargetRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	for _, target := range []Target{VideoTarget(id), TweetTarget(id), CommentTarget(id)} {
		refs, err := RefsFor(target)
		require.NoError(t, err)

		back, err := refs.Target()
		require.NoError(t, err)
		assert.Equal(t, target, back)
		assert.Equal(t, bson.M{string(target.Kind): id}, target.Filter())
	}
}

func TestTargetRejectsInvalid(t *testing.T) {
	_, err := RefsFor(Target{Kind: TargetVideo})
	assert.Error(t, err, "zero id")

	_, err = RefsFor(Target{Kind: "playlist", ID: primitive.NewObjectID()})
	assert.Error(t, err, "unknown kind")

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	_, err = TargetRefs{Video: &a, Comment: &b}.Target()
	assert.Error(t, err, "two targets")

	_, err = TargetRefs{}.Target()
	assert.Error(t, err, "no target")
}

func TestTargetRefsStorage(t *testing.T) {
	type like struct {
		LikedBy    primitive.ObjectID `bson:"likedBy"`
		TargetRefs `bson:",inline"`
	}
	id := primitive.NewObjectID()
	refs, _ := RefsFor(TweetTarget(id))

	raw, err := bson.Marshal(like{LikedBy: primitive.NewObjectID(), TargetRefs: refs})
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, id, m["tweet"])
	assert.NotContains(t, m, "video")
	assert.NotContains(t, m, "comment")
}

func TestNewPaginateResult(t *testing.T) {
	empty := NewPaginateResult[int](nil, 0, 1, 10)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, int64(0), empty.ItemCount)
	assert.Equal(t, int64(0), empty.TotalPage)

	page := NewPaginateResult([]int{1, 2, 3}, 23, 3, 10)
	assert.Equal(t, int64(3), page.ItemCount)
	assert.Equal(t, int64(23), page.TotalCount)
	assert.Equal(t, int64(3), page.TotalPage)
}
