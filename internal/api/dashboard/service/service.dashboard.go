// Package dashboardsvc aggregates channel statistics.
package dashboardsvc

import (
	"context"
	"fmt"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	dashboardmodels "github.com/Kapilrajreddy/youtube-api/internal/api/dashboard/models"
	videosmodels "github.com/Kapilrajreddy/youtube-api/internal/api/videos/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DashboardService struct {
	videos        *mongo.Collection
	tweets        *mongo.Collection
	comments      *mongo.Collection
	subscriptions *mongo.Collection
}

func NewDashboardService() (*DashboardService, error) {
	names := global.MongoDB_ColNames
	colls := make([]*mongo.Collection, 0, 4)
	for _, name := range []string{names.Videos, names.Tweets, names.Comments, names.Subscriptions} {
		coll, exist := global.RegistryCollections.Get(name)
		if !exist {
			return nil, fmt.Errorf("failed to get %s collection: %w", name, common.ErrNotFound)
		}
		colls = append(colls, coll)
	}
	return &DashboardService{videos: colls[0], tweets: colls[1], comments: colls[2], subscriptions: colls[3]}, nil
}

type totals struct {
	Count int64 `bson:"count"`
	Views int64 `bson:"views"`
	Likes int64 `bson:"likes"`
}

// ownerTotals counts the documents owned by userID, their views and the likes referencing them through likeField.
func ownerTotals(userID primitive.ObjectID, likeField string) mongo.Pipeline {
	return mongo.Pipeline{
		basesvc.MatchStage(bson.M{"owner": userID}),
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Likes,
			"localField":   "_id",
			"foreignField": likeField,
			"as":           "likes",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"_id": 1}}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"views": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$views", 0}}},
			"likes": bson.M{"$sum": bson.M{"$size": "$likes"}},
		}}},
	}
}

func (s *DashboardService) totals(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) (totals, error) {
	t, err := basesvc.AggregateOne[totals](ctx, coll, pipeline)
	if err != nil && common.StatusOf(err) == common.StatusNotFound {
		return totals{}, nil
	}
	return t, err
}

// Stats totals a channel. TotalLikes counts likes on everything the channel owns:
// its videos, tweets and comments.
func (s *DashboardService) Stats(ctx context.Context, userID primitive.ObjectID) (dashboardmodels.ChannelStats, error) {
	var stats dashboardmodels.ChannelStats
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, userID, "channel"); err != nil {
		return stats, err
	}

	videos, err := s.totals(ctx, s.videos, ownerTotals(userID, "video"))
	if err != nil {
		return stats, err
	}
	tweets, err := s.totals(ctx, s.tweets, ownerTotals(userID, "tweet"))
	if err != nil {
		return stats, err
	}
	comments, err := s.totals(ctx, s.comments, ownerTotals(userID, "comment"))
	if err != nil {
		return stats, err
	}
	subscribers, err := s.subscriptions.CountDocuments(ctx, bson.M{"channel": userID})
	if err != nil {
		return stats, common.ConvertMongoError(err)
	}

	stats.TotalVideos = videos.Count
	stats.TotalViews = videos.Views
	stats.TotalLikes = videos.Likes + tweets.Likes + comments.Likes
	stats.TotalTweets = tweets.Count
	stats.TotalSubscribers = subscribers
	return stats, nil
}

// Videos pages a channel's videos with like and comment counts. Others see only published ones.
func (s *DashboardService) Videos(ctx context.Context, userID, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[videosmodels.VideoListItem], error) {
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, userID, "channel"); err != nil {
		return nil, err
	}
	filter := bson.M{"owner": userID}
	if actor != userID {
		filter["isPublished"] = true
	}
	pipeline := []bson.D{basesvc.MatchStage(filter), basesvc.NewestFirst()}
	decorate := basesvc.Stages(
		basesvc.LikesLookup("video", actor),
		basesvc.CountLookup(global.MongoDB_ColNames.Comments, "_id", "video", "commentsCount"),
	)
	return basesvc.Paginate[videosmodels.VideoListItem](ctx, s.videos, pipeline, decorate, page, limit)
}
