package models

import (
	"testing"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	"github.com/Kapilrajreddy/youtube-api/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewLike(t *testing.T) {
	user, tweet := primitive.NewObjectID(), primitive.NewObjectID()
	like, err := NewLike(user, basemodels.TweetTarget(tweet))
	require.NoError(t, err)
	assert.Nil(t, like.Video)
	assert.Nil(t, like.Comment)

	target, err := like.Target()
	require.NoError(t, err)
	assert.Equal(t, basemodels.TweetTarget(tweet), target)
}

func TestLikeUniqueIndex(t *testing.T) {
	specs, err := database.BuildIndexSpecs("likes", Like{})
	require.NoError(t, err)
	for _, s := range specs {
		if s.Name == "like_target_unique" {
			assert.True(t, s.Unique)
			assert.Equal(t, bson.D{
				{Key: "likedBy", Value: 1}, {Key: "video", Value: 1},
				{Key: "comment", Value: 1}, {Key: "tweet", Value: 1},
			}, s.Keys)
			return
		}
	}
	t.Fatal("like_target_unique not declared")
}
