// Package likessvc toggles likes on videos, comments and tweets.
package likessvc

import (
	"context"
	"fmt"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	likesmodels "github.com/Kapilrajreddy/youtube-api/internal/api/likes/models"
	videosmodels "github.com/Kapilrajreddy/youtube-api/internal/api/videos/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LikeService struct {
	*basesvc.BaseServiceMongoImpl[likesmodels.Like]
}

func NewLikeService() (*LikeService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Likes)
	if !exist {
		return nil, fmt.Errorf("failed to get likes collection: %w", common.ErrNotFound)
	}
	return NewLikeServiceWith(coll), nil
}

func NewLikeServiceWith(coll *mongo.Collection) *LikeService {
	return &LikeService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[likesmodels.Like](coll)}
}

// Toggle likes target for actor, or removes the like. It reports whether the like now exists.
func (s *LikeService) Toggle(ctx context.Context, actor primitive.ObjectID, target basemodels.Target) (bool, error) {
	like, err := likesmodels.NewLike(actor, target)
	if err != nil {
		return false, err
	}
	if err := basesvc.EnsureTarget(ctx, target); err != nil {
		return false, err
	}
	pair := bson.M{"likedBy": actor, target.Field(): target.ID}
	return basesvc.Toggle(ctx, s.Collection(), pair, like)
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, videoID, actor primitive.ObjectID) (bool, error) {
	return s.Toggle(ctx, actor, basemodels.VideoTarget(videoID))
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, actor primitive.ObjectID) (bool, error) {
	return s.Toggle(ctx, actor, basemodels.CommentTarget(commentID))
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, tweetID, actor primitive.ObjectID) (bool, error) {
	return s.Toggle(ctx, actor, basemodels.TweetTarget(tweetID))
}

// LikedVideos pages the videos actor liked, most recently liked first.
func (s *LikeService) LikedVideos(ctx context.Context, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[videosmodels.VideoListItem], error) {
	pipeline := []bson.D{
		basesvc.MatchStage(bson.M{"likedBy": actor, "video": bson.M{"$exists": true}}),
		basesvc.NewestFirst(),
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "video",
			"foreignField": "_id",
			"as":           "video",
		}}},
		{{Key: "$unwind", Value: "$video"}},
		basesvc.MatchStage(bson.M{"$or": bson.A{
			bson.M{"video.isPublished": true},
			bson.M{"video.owner": actor},
		}}),
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$video"}}},
	}
	decorate := basesvc.Stages(
		basesvc.OwnerLookup("owner", "owner"),
		basesvc.LikesLookup("video", actor),
		basesvc.CountLookup(global.MongoDB_ColNames.Comments, "_id", "video", "commentsCount"),
	)
	return basesvc.Paginate[videosmodels.VideoListItem](ctx, s.Collection(), pipeline, decorate, page, limit)
}
