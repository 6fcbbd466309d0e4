package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type indexedModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username" index:"unique"`
	Email       string             `bson:"email,omitempty" index:"unique,sparse"`
	Title       string             `bson:"title" index:"text,weight:5"`
	Description string             `bson:"description" index:"text"`
	Owner       primitive.ObjectID `bson:"owner" index:"single;compound:owner_created"`
	CreatedAt   int64              `bson:"createdAt" index:"single,order:-1;compound:owner_created,order:-1"`
	LikedBy     primitive.ObjectID `bson:"likedBy" index:"compound:pair_unique"`
	Video       primitive.ObjectID `bson:"video,omitempty" index:"compound:pair_unique"`
	ExpiresAt   int64              `bson:"expiresAt" index:"ttl:60"`
	Ignored     string             `bson:"-" index:"single"`
}

func specByName(specs []IndexSpec, name string) (IndexSpec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return IndexSpec{}, false
}

func TestBuildIndexSpecs(t *testing.T) {
	specs, err := BuildIndexSpecs("videos", &indexedModel{})
	require.NoError(t, err)

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"createdAt_single", "email_unique", "expiresAt_ttl", "owner_created",
		"owner_single", "pair_unique", "username_unique", "videos_text",
	}, names)

	text, _ := specByName(specs, "videos_text")
	assert.Equal(t, bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}, text.Keys)
	assert.Equal(t, bson.D{{Key: "title", Value: 5}}, text.Weights)

	created, _ := specByName(specs, "createdAt_single")
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, created.Keys)

	compound, _ := specByName(specs, "owner_created")
	assert.Equal(t, bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}, compound.Keys)
	assert.False(t, compound.Unique)

	pair, _ := specByName(specs, "pair_unique")
	assert.True(t, pair.Unique)
	assert.Equal(t, bson.D{{Key: "likedBy", Value: 1}, {Key: "video", Value: 1}}, pair.Keys)

	email, _ := specByName(specs, "email_unique")
	assert.True(t, email.Sparse)

	ttl, _ := specByName(specs, "expiresAt_ttl")
	require.NotNil(t, ttl.TTL)
	assert.Equal(t, int32(60), *ttl.TTL)
}

func TestBuildIndexSpecsRejectsBadTTL(t *testing.T) {
	type bad struct {
		At int64 `bson:"at" index:"ttl:soon"`
	}
	_, err := BuildIndexSpecs("x", bad{})
	assert.Error(t, err)
}

func TestCompareIndex(t *testing.T) {
	spec := IndexSpec{Name: "pair_unique", Keys: bson.D{{Key: "a", Value: 1}, {Key: "b", Value: -1}}, Unique: true}

	assert.True(t, compareIndex(bson.M{"key": bson.M{"a": int32(1), "b": int32(-1)}, "unique": true}, spec))
	assert.False(t, compareIndex(bson.M{"key": bson.M{"a": int32(1), "b": int32(-1)}}, spec), "unique flag drifted")
	assert.False(t, compareIndex(bson.M{"key": bson.M{"a": int32(1)}, "unique": true}, spec), "missing key")

	text := IndexSpec{Name: "videos_text", Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}}
	assert.True(t, compareIndex(bson.M{"key": bson.M{"_fts": "text", "_ftsx": int32(1)}, "weights": bson.M{"title": int32(1), "description": int32(1)}}, text))
	assert.False(t, compareIndex(bson.M{"weights": bson.M{"title": int32(1)}}, text))
}

func TestBuildIndexSpecsInline(t *testing.T) {
	type refs struct {
		Video *primitive.ObjectID `bson:"video,omitempty" index:"single;compound:like_unique"`
	}
	type like struct {
		LikedBy primitive.ObjectID `bson:"likedBy" index:"compound:like_unique"`
		refs    `bson:",inline"`
	}
	specs, err := BuildIndexSpecs("likes", like{})
	require.NoError(t, err)

	pair, ok := specByName(specs, "like_unique")
	require.True(t, ok)
	assert.Equal(t, bson.D{{Key: "likedBy", Value: 1}, {Key: "video", Value: 1}}, pair.Keys)
	_, ok = specByName(specs, "video_single")
	assert.True(t, ok)
}
