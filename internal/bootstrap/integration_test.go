//go:build integration

package bootstrap_test

import (
	"context"
	"fmt"
	"os"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	commentsdto "github.com/Kapilrajreddy/youtube-api/internal/api/comments/dto"
	commentssvc "github.com/Kapilrajreddy/youtube-api/internal/api/comments/service"
	dashboardsvc "github.com/Kapilrajreddy/youtube-api/internal/api/dashboard/service"
	"github.com/Kapilrajreddy/youtube-api/internal/api/events"
	likessvc "github.com/Kapilrajreddy/youtube-api/internal/api/likes/service"
	playlistsdto "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/dto"
	playlistssvc "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/service"
	subscriptionssvc "github.com/Kapilrajreddy/youtube-api/internal/api/subscriptions/service"
	usersdto "github.com/Kapilrajreddy/youtube-api/internal/api/users/dto"
	usersmodels "github.com/Kapilrajreddy/youtube-api/internal/api/users/models"
	userssvc "github.com/Kapilrajreddy/youtube-api/internal/api/users/service"
	videosdto "github.com/Kapilrajreddy/youtube-api/internal/api/videos/dto"
	videosmodels "github.com/Kapilrajreddy/youtube-api/internal/api/videos/models"
	videossvc "github.com/Kapilrajreddy/youtube-api/internal/api/videos/service"
	"github.com/Kapilrajreddy/youtube-api/internal/bootstrap"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/maintenance"
	"github.com/Kapilrajreddy/youtube-api/internal/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "start mongodb: %v\n", err)
		os.Exit(1)
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connection string: %v\n", err)
		os.Exit(1)
	}

	os.Setenv("MONGODB_CONNECTION_URI", uri)
	os.Setenv("MONGODB_DBNAME", "videotube_it")
	os.Setenv("MONGODB_USE_TRANSACTIONS", "true")
	os.Setenv("JWT_SECRET", "integration-secret-0123456789")

	_, db, err := bootstrap.Init(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()

	_ = global.MongoDB_Session.Disconnect(ctx)
	if err := testcontainers.TerminateContainer(container); err != nil {
		fmt.Fprintf(os.Stderr, "terminate mongodb: %v\n", err)
	}
	os.Exit(code)
}

type fakeStore struct{}

func (fakeStore) Upload(_ context.Context, path string) (*media.Asset, error) {
	name := filepath.Base(path)
	return &media.Asset{URL: "http://media.test/" + name, PublicID: name, Duration: 12.5}, nil
}

func (fakeStore) Delete(context.Context, string, media.ResourceKind) error { return nil }

type fixture struct {
	users    *userssvc.UserService
	videos   *videossvc.VideoService
	comments *commentssvc.CommentService
	likes    *likessvc.LikeService
	subs     *subscriptionssvc.SubscriptionService
	lists    *playlistssvc.PlaylistService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users, err := userssvc.NewUserService()
	require.NoError(t, err)
	comments, err := commentssvc.NewCommentService()
	require.NoError(t, err)
	likes, err := likessvc.NewLikeService()
	require.NoError(t, err)
	subs, err := subscriptionssvc.NewSubscriptionService()
	require.NoError(t, err)
	lists, err := playlistssvc.NewPlaylistService()
	require.NoError(t, err)

	videos := videossvc.NewVideoServiceWith(
		testDB.Collection(global.MongoDB_ColNames.Videos), users, comments, fakeStore{}, basesvc.DefaultCascader())
	return fixture{users: users, videos: videos, comments: comments, likes: likes, subs: subs, lists: lists}
}

func ctxT(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func (f fixture) user(t *testing.T, name string) usersmodels.User {
	t.Helper()
	u, err := f.users.Create(ctxT(t), usersdto.UserCreateInput{
		Username: fmt.Sprintf("%s%d", name, time.Now().UnixNano()%1e9),
		FullName: name,
	})
	require.NoError(t, err)
	return u
}

func tempFile(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o600))
	return p
}

func (f fixture) video(t *testing.T, owner primitive.ObjectID, title string) videosmodels.Video {
	t.Helper()
	ctx := ctxT(t)
	v, err := f.videos.Publish(ctx, owner,
		videosdto.PublishInput{Title: title, Description: "about " + title},
		tempFile(t, "clip.mp4"), tempFile(t, "thumb.png"))
	require.NoError(t, err)
	published, err := f.videos.TogglePublish(ctx, v.ID, owner)
	require.NoError(t, err)
	require.True(t, published)
	return v
}

func count(t *testing.T, coll string, filter bson.M) int64 {
	t.Helper()
	n, err := testDB.Collection(coll).CountDocuments(ctxT(t), filter)
	require.NoError(t, err)
	return n
}

func TestPageNeverExceedsLimit(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner, viewer := f.user(t, "pager"), f.user(t, "reader")
	v := f.video(t, owner.ID, "paging")

	for i := 0; i < 7; i++ {
		_, err := f.comments.AddVideoComment(ctx, v.ID, viewer.ID, commentsdto.CommentInput{Content: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
	}

	page, err := f.comments.List(ctx, basemodels.VideoTarget(v.ID), viewer.ID, 2, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, page.ItemCount, int64(3))
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(7), page.TotalCount)

	last, err := f.comments.List(ctx, basemodels.VideoTarget(v.ID), viewer.ID, 3, 3)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)

	beyond, err := f.comments.List(ctx, basemodels.VideoTarget(v.ID), viewer.ID, math.MaxInt64, 100)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(7), beyond.TotalCount)
}

func TestDoubleLikeNetsToAbsent(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner, fan := f.user(t, "liked"), f.user(t, "fan")
	v := f.video(t, owner.ID, "likeable")

	liked, err := f.likes.ToggleVideoLike(ctx, v.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = f.likes.ToggleVideoLike(ctx, v.ID, fan.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	assert.Zero(t, count(t, global.MongoDB_ColNames.Likes, bson.M{"video": v.ID, "likedBy": fan.ID}))

	_, err = f.likes.ToggleVideoLike(ctx, primitive.NewObjectID(), fan.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteVideoCascades(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner, fan := f.user(t, "cascade"), f.user(t, "critic")
	v := f.video(t, owner.ID, "doomed")

	c, err := f.comments.AddVideoComment(ctx, v.ID, fan.ID, commentsdto.CommentInput{Content: "top"})
	require.NoError(t, err)
	reply, err := f.comments.AddReply(ctx, c.ID, owner.ID, commentsdto.CommentInput{Content: "reply"})
	require.NoError(t, err)
	_, err = f.likes.ToggleVideoLike(ctx, v.ID, fan.ID)
	require.NoError(t, err)
	_, err = f.likes.ToggleCommentLike(ctx, c.ID, owner.ID)
	require.NoError(t, err)
	_, err = f.likes.ToggleCommentLike(ctx, reply.ID, fan.ID)
	require.NoError(t, err)

	list, err := f.lists.Create(ctx, fan.ID, playlistsdto.PlaylistCreateInput{Name: "keep"})
	require.NoError(t, err)
	_, err = f.lists.AddVideo(ctx, list.ID, v.ID, fan.ID)
	require.NoError(t, err)
	_, err = f.videos.GetByID(ctx, v.ID, fan.ID)
	require.NoError(t, err)

	_, err = f.videos.Delete(ctx, v.ID, fan.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = f.videos.Delete(ctx, v.ID, owner.ID)
	require.NoError(t, err)

	n := global.MongoDB_ColNames
	assert.Zero(t, count(t, n.Videos, bson.M{"_id": v.ID}))
	assert.Zero(t, count(t, n.Likes, bson.M{"video": v.ID}))
	assert.Zero(t, count(t, n.Comments, bson.M{"_id": bson.M{"$in": bson.A{c.ID, reply.ID}}}))
	assert.Zero(t, count(t, n.Likes, bson.M{"comment": bson.M{"$in": bson.A{c.ID, reply.ID}}}))
	assert.Zero(t, count(t, n.Playlists, bson.M{"_id": list.ID, "videos": v.ID}))
	assert.Zero(t, count(t, n.Users, bson.M{"_id": fan.ID, "watchHistory": v.ID}))
}

func TestNonOwnerUpdateLeavesEntity(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	author, other := f.user(t, "author"), f.user(t, "intruder")
	v := f.video(t, author.ID, "mine")

	c, err := f.comments.AddVideoComment(ctx, v.ID, author.ID, commentsdto.CommentInput{Content: "original"})
	require.NoError(t, err)

	_, err = f.comments.Update(ctx, c.ID, other.ID, commentsdto.CommentInput{Content: "hijacked"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = f.videos.Update(ctx, v.ID, other.ID, videosdto.UpdateInput{Title: "hijacked", Description: "x"}, "")
	assert.ErrorIs(t, err, common.ErrForbidden)

	assert.Equal(t, int64(1), count(t, global.MongoDB_ColNames.Comments, bson.M{"_id": c.ID, "content": "original"}))
	assert.Equal(t, int64(1), count(t, global.MongoDB_ColNames.Videos, bson.M{"_id": v.ID, "title": "mine"}))

	updated, err := f.comments.Update(ctx, c.ID, author.ID, commentsdto.CommentInput{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestGetByIDCountsViewsAndHistoryOnce(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner, viewer := f.user(t, "host"), f.user(t, "watcher")
	v := f.video(t, owner.ID, "watched")

	first, err := f.videos.GetByID(ctx, v.ID, viewer.ID)
	require.NoError(t, err)
	second, err := f.videos.GetByID(ctx, v.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Views+1, second.Views)

	u, err := f.users.FindOneById(ctx, viewer.ID)
	require.NoError(t, err)
	hits := 0
	for _, id := range u.WatchHistory {
		if id == v.ID {
			hits++
		}
	}
	assert.Equal(t, 1, hits)

	history, err := f.videos.WatchHistory(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, v.ID, history.Items[0].ID)
}

func TestUnpublishedHiddenFromOthers(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner, viewer := f.user(t, "drafter"), f.user(t, "peeker")
	v := f.video(t, owner.ID, "draft")

	published, err := f.videos.TogglePublish(ctx, v.ID, owner.ID)
	require.NoError(t, err)
	require.False(t, published)

	_, err = f.videos.GetByID(ctx, v.ID, viewer.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.videos.GetByID(ctx, v.ID, owner.ID)
	assert.NoError(t, err)
}

func TestSubscriptionToggle(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	channel, follower := f.user(t, "channel"), f.user(t, "follower")

	active, err := f.subs.Toggle(ctx, channel.ID, follower.ID)
	require.NoError(t, err)
	assert.True(t, active)

	subs, err := f.subs.Subscribers(ctx, channel.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, subs.Items, 1)

	active, err = f.subs.Toggle(ctx, channel.ID, follower.ID)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Zero(t, count(t, global.MongoDB_ColNames.Subscriptions, bson.M{"channel": channel.ID}))

	_, err = f.subs.Toggle(ctx, follower.ID, follower.ID)
	assert.Error(t, err)
}

func TestSearchWithoutMatchIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner := f.user(t, "searcher")
	f.video(t, owner.ID, "kittens playing")

	page, err := f.videos.Search(ctx, videosdto.SearchQuery{Query: "zzqxnomatch", SortBy: "views", SortType: "desc"}, primitive.NilObjectID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)

	page, err = f.videos.Search(ctx, videosdto.SearchQuery{Query: "kittens", SortBy: "createdAt", SortType: "asc"}, primitive.NilObjectID, 1, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, page.Items)
}

func TestRepairRemovesOrphans(t *testing.T) {
	ctx := ctxT(t)
	n := global.MongoDB_ColNames
	ghost := primitive.NewObjectID()

	_, err := testDB.Collection(n.Likes).InsertOne(ctx, bson.M{"likedBy": primitive.NewObjectID(), "video": ghost})
	require.NoError(t, err)
	res, err := testDB.Collection(n.Comments).InsertOne(ctx, bson.M{"content": "orphan", "owner": primitive.NewObjectID(), "video": ghost})
	require.NoError(t, err)
	_, err = testDB.Collection(n.Comments).InsertOne(ctx, bson.M{"content": "orphan reply", "owner": primitive.NewObjectID(), "comment": res.InsertedID})
	require.NoError(t, err)

	dry, err := maintenance.NewRepairer(testDB, true).Run(ctx)
	require.NoError(t, err)
	assert.Positive(t, dry.Total())
	assert.Equal(t, int64(1), count(t, n.Likes, bson.M{"video": ghost}))

	report, err := maintenance.NewRepairer(testDB, false).Run(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.Passes, 2, "a pass that removes documents is followed by a confirming pass")
	assert.Zero(t, count(t, n.Likes, bson.M{"video": ghost}))
	assert.Zero(t, count(t, n.Comments, bson.M{"comment": res.InsertedID}))
}

// hammer runs fn from n goroutines released together.
func hammer(n int, fn func()) {
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer done.Done()
			start.Wait()
			fn()
		}()
	}
	start.Done()
	done.Wait()
}

func TestConcurrentLikeTogglesKeepOneLike(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner, fan := f.user(t, "racer"), f.user(t, "clicker")
	v := f.video(t, owner.ID, "contended")
	n := global.MongoDB_ColNames

	hammer(16, func() {
		_, err := f.likes.ToggleVideoLike(ctx, v.ID, fan.ID)
		assert.NoError(t, err)
	})
	assert.LessOrEqual(t, count(t, n.Likes, bson.M{"video": v.ID, "likedBy": fan.ID}), int64(1))

	// From a known present state a second raw insert must hit the unique index.
	if count(t, n.Likes, bson.M{"video": v.ID, "likedBy": fan.ID}) == 0 {
		liked, err := f.likes.ToggleVideoLike(ctx, v.ID, fan.ID)
		require.NoError(t, err)
		require.True(t, liked)
	}
	_, err := testDB.Collection(n.Likes).InsertOne(ctx, bson.M{"likedBy": fan.ID, "video": v.ID})
	require.Error(t, err)
	assert.True(t, mongo.IsDuplicateKeyError(err))
}

func TestConcurrentSubscriptionTogglesKeepOneSubscription(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	channel, follower := f.user(t, "busy"), f.user(t, "eager")
	n := global.MongoDB_ColNames

	hammer(16, func() {
		_, err := f.subs.Toggle(ctx, channel.ID, follower.ID)
		assert.NoError(t, err)
	})
	pair := bson.M{"channel": channel.ID, "subscriber": follower.ID}
	assert.LessOrEqual(t, count(t, n.Subscriptions, pair), int64(1))

	if count(t, n.Subscriptions, pair) == 0 {
		active, err := f.subs.Toggle(ctx, channel.ID, follower.ID)
		require.NoError(t, err)
		require.True(t, active)
	}
	_, err := testDB.Collection(n.Subscriptions).InsertOne(ctx, pair)
	require.Error(t, err)
	assert.True(t, mongo.IsDuplicateKeyError(err))
}

func TestAbortedCascadeEmitsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner := f.user(t, "rollback")
	v := f.video(t, owner.ID, "survivor")
	events.Wait()

	var mu sync.Mutex
	var seen []events.DataChangeEvent
	events.Reset()
	t.Cleanup(events.Reset)
	events.OnDataChanged(func(_ context.Context, e events.DataChangeEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e)
	})

	cascader := basesvc.DefaultCascader()
	err := cascader.Run(ctx, func(ctx context.Context) error {
		_, err := f.videos.DeleteById(ctx, v.ID)
		return err
	}, func(context.Context) ([]basesvc.CascadeStep, error) {
		return []basesvc.CascadeStep{{Collection: "not_registered", Filter: bson.M{"video": v.ID}}}, nil
	})
	require.Error(t, err)
	events.Wait()

	assert.Equal(t, int64(1), count(t, global.MongoDB_ColNames.Videos, bson.M{"_id": v.ID}))
	mu.Lock()
	assert.Empty(t, seen)
	mu.Unlock()

	_, err = f.videos.Delete(ctx, v.ID, owner.ID)
	require.NoError(t, err)
	events.Wait()
	mu.Lock()
	defer mu.Unlock()
	deleted := false
	for _, e := range seen {
		if e.Operation == events.OpDelete && e.DocumentID == v.ID {
			deleted = true
		}
	}
	assert.True(t, deleted, "committed delete is announced")
}

func TestDashboardCountsCommentLikes(t *testing.T) {
	f := newFixture(t)
	ctx := ctxT(t)
	owner, fan := f.user(t, "stats"), f.user(t, "voter")
	v := f.video(t, owner.ID, "counted")

	c, err := f.comments.AddVideoComment(ctx, v.ID, owner.ID, commentsdto.CommentInput{Content: "pinned"})
	require.NoError(t, err)
	_, err = f.likes.ToggleVideoLike(ctx, v.ID, fan.ID)
	require.NoError(t, err)
	_, err = f.likes.ToggleCommentLike(ctx, c.ID, fan.ID)
	require.NoError(t, err)

	dash, err := dashboardsvc.NewDashboardService()
	require.NoError(t, err)
	stats, err := dash.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(2), stats.TotalLikes)
}
