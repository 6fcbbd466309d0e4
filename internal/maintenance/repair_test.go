package maintenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestReferencesCoverAttachmentTargets(t *testing.T) {
	var names []string
	for _, ref := range OrphanReferences() {
		names = append(names, ref.String())
	}
	assert.Contains(t, names, "likes.video -> videos")
	assert.Contains(t, names, "likes.comment -> comments")
	assert.Contains(t, names, "comments.comment -> comments")
	assert.Contains(t, names, "subscriptions.channel -> users")

	var lists []string
	for _, ref := range ListReferences() {
		lists = append(lists, ref.String())
	}
	assert.Equal(t, []string{"playlists.videos -> videos", "users.watchHistory -> videos"}, lists)
}

func TestOrphanPipeline(t *testing.T) {
	p := orphanPipeline(Reference{Collection: "likes", Field: "tweet", Target: "tweets"})
	require.Len(t, p, 4)

	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, bson.M{"tweet": bson.M{"$exists": true, "$ne": nil}}, p[0][0].Value)

	lookup := p[1][0].Value.(bson.M)
	assert.Equal(t, "tweets", lookup["from"])
	assert.Equal(t, "tweet", lookup["localField"])

	assert.Equal(t, bson.M{"ref": bson.M{"$size": 0}}, p[2][0].Value)
}

func TestDanglingPipeline(t *testing.T) {
	p := danglingPipeline(Reference{Collection: "playlists", Field: "videos", Target: "videos"})
	require.Len(t, p, 4)

	project := p[2][0].Value.(bson.M)
	assert.Equal(t, bson.M{"$setDifference": bson.A{"$videos", "$found._id"}}, project["missing"])
	assert.Equal(t, bson.M{"missing.0": bson.M{"$exists": true}}, p[3][0].Value)
}

func TestReportTotal(t *testing.T) {
	r := Report{
		Deleted: map[string]int64{"likes.video -> videos": 3, "comments.video -> videos": 2},
		Pulled:  map[string]int64{"playlists.videos -> videos": 1},
	}
	assert.Equal(t, int64(6), r.Total())
	assert.Equal(t, int64(0), Report{}.Total())
}
