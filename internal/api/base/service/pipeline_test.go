package basesvc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, limit         int64
		wantPage, wantLimit int64
	}{
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 5, 2, 5},
		{1, 1000, 1, 100},
		{math.MaxInt64, 100, math.MaxInt64 / 100, 100},
		{math.MaxInt64, 0, math.MaxInt64 / 10, 10},
	}
	for _, c := range cases {
		p, l := ClampPage(c.page, c.limit)
		assert.Equal(t, c.wantPage, p)
		assert.Equal(t, c.wantLimit, l)
	}
}

func TestSortStageAppendsTieBreak(t *testing.T) {
	stage := NewestFirst()
	assert.Equal(t, bson.D{{Key: "$sort", Value: bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	}}}, stage)

	stage = SortStage(bson.E{Key: "_id", Value: -1}, bson.E{Key: "views", Value: 1})
	assert.Equal(t, bson.D{{Key: "views", Value: 1}, {Key: "_id", Value: 1}}, stage[0].Value)
}

func TestFacetPageSkip(t *testing.T) {
	facet := FacetPage(3, 10)[0].Value.(bson.M)
	items := facet["items"].(bson.A)
	assert.Equal(t, bson.M{"$skip": int64(20)}, items[0])
	assert.Equal(t, bson.M{"$limit": int64(10)}, items[1])

	page, limit := ClampPage(math.MaxInt64, 100)
	huge := FacetPage(page, limit)[0].Value.(bson.M)["items"].(bson.A)
	skip := huge[0].(bson.M)["$skip"].(int64)
	assert.GreaterOrEqual(t, skip, int64(0))
	assert.Equal(t, (page-1)*limit, skip)

	unclamped := FacetPage(math.MaxInt64, 100)[0].Value.(bson.M)["items"].(bson.A)
	assert.Equal(t, bson.M{"$skip": int64(math.MaxInt64)}, unclamped[0])

	decorated := FacetPage(1, 5, MatchStage(bson.M{"x": 1}))[0].Value.(bson.M)["items"].(bson.A)
	require.Len(t, decorated, 3)
	assert.Equal(t, MatchStage(bson.M{"x": 1}), decorated[2])
}

func TestLikesLookupAnonymous(t *testing.T) {
	stages := LikesLookup("video", primitive.NilObjectID)
	require.Len(t, stages, 3)
	fields := stages[1][0].Value.(bson.M)
	assert.Equal(t, false, fields["isLiked"])

	actor := primitive.NewObjectID()
	fields = LikesLookup("video", actor)[1][0].Value.(bson.M)
	assert.Equal(t, bson.M{"$in": bson.A{actor, "$likes.likedBy"}}, fields["isLiked"])
}

func TestOwnerLookupProjectsPublicFields(t *testing.T) {
	stages := OwnerLookup("owner", "owner")
	lookup := stages[0][0].Value.(bson.M)
	assert.Equal(t, "users", lookup["from"])
	assert.Equal(t, bson.M{"$first": "$owner"}, stages[1][0].Value.(bson.M)["owner"])
}

func TestToUpdateData(t *testing.T) {
	type patch struct {
		ID    primitive.ObjectID `bson:"_id,omitempty"`
		Title string             `bson:"title,omitempty"`
	}
	u, err := ToUpdateData(patch{ID: primitive.NewObjectID(), Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"title": "x"}, u.Set)

	same := &UpdateData{Inc: map[string]interface{}{"views": 1}}
	got, err := ToUpdateData(same)
	require.NoError(t, err)
	assert.Same(t, same, got)

	_, err = ToUpdateData(nil)
	assert.Error(t, err)
}

func TestStages(t *testing.T) {
	out := Stages([]bson.D{MatchStage(bson.M{"a": 1})}, nil, []bson.D{NewestFirst()})
	assert.Len(t, out, 2)
}
