// Package subscriptionssvc toggles and lists channel subscriptions.
package subscriptionssvc

import (
	"context"
	"fmt"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	subsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/subscriptions/models"
	userssvc "github.com/Kapilrajreddy/youtube-api/internal/api/users/service"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubscriptionService struct {
	*basesvc.BaseServiceMongoImpl[subsmodels.Subscription]
	users *userssvc.UserService
}

func NewSubscriptionService() (*SubscriptionService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subscriptions)
	if !exist {
		return nil, fmt.Errorf("failed to get subscriptions collection: %w", common.ErrNotFound)
	}
	users, err := userssvc.NewUserService()
	if err != nil {
		return nil, err
	}
	return NewSubscriptionServiceWith(coll, users), nil
}

func NewSubscriptionServiceWith(coll *mongo.Collection, users *userssvc.UserService) *SubscriptionService {
	return &SubscriptionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[subsmodels.Subscription](coll),
		users:                users,
	}
}

// Toggle subscribes actor to channelID, or unsubscribes. It reports whether the subscription now exists.
func (s *SubscriptionService) Toggle(ctx context.Context, channelID, actor primitive.ObjectID) (bool, error) {
	if channelID == actor {
		return false, common.NewValidationError("you cannot subscribe to your own channel")
	}
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, channelID, "channel"); err != nil {
		return false, err
	}
	pair := bson.M{"subscriber": actor, "channel": channelID}
	return basesvc.Toggle(ctx, s.Collection(), pair, subsmodels.Subscription{Subscriber: actor, Channel: channelID})
}

func (s *SubscriptionService) ToggleByUsername(ctx context.Context, username string, actor primitive.ObjectID) (bool, error) {
	channel, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return false, common.NewNotFoundError("channel not found")
		}
		return false, err
	}
	return s.Toggle(ctx, channel.ID, actor)
}

// Subscribers pages the users following channelID, newest first.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[subsmodels.SubscriberView], error) {
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, channelID, "channel"); err != nil {
		return nil, err
	}
	pipeline := []bson.D{
		basesvc.MatchStage(bson.M{"channel": channelID}),
		basesvc.NewestFirst(),
	}
	return basesvc.Paginate[subsmodels.SubscriberView](ctx, s.Collection(), pipeline, subscriberDecorate(channelID), page, limit)
}

func subscriberDecorate(channelID primitive.ObjectID) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "subscriber",
			"foreignField": "_id",
			"as":           "subscriber",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Subscriptions,
					"localField":   "_id",
					"foreignField": "channel",
					"as":           "followers",
					"pipeline":     bson.A{bson.M{"$project": bson.M{"subscriber": 1}}},
				}},
				bson.M{"$project": bson.M{
					"username":               1,
					"fullName":               1,
					"avatar.url":             1,
					"subscribersCount":       bson.M{"$size": "$followers"},
					"subscribedToSubscriber": bson.M{"$in": bson.A{channelID, "$followers.subscriber"}},
				}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{"subscriber": bson.M{"$first": "$subscriber"}}}},
		{{Key: "$project", Value: bson.M{"subscriber": 1, "createdAt": 1}}},
	}
}

// SubscribedChannels pages the channels subscriberID follows with each channel's latest published video.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[subsmodels.ChannelView], error) {
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, subscriberID, "user"); err != nil {
		return nil, err
	}
	pipeline := []bson.D{
		basesvc.MatchStage(bson.M{"subscriber": subscriberID}),
		basesvc.NewestFirst(),
	}
	return basesvc.Paginate[subsmodels.ChannelView](ctx, s.Collection(), pipeline, channelDecorate(), page, limit)
}

func channelDecorate() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "channel",
			"foreignField": "_id",
			"as":           "channel",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Videos,
					"localField":   "_id",
					"foreignField": "owner",
					"as":           "latestVideo",
					"pipeline": bson.A{
						bson.M{"$match": bson.M{"isPublished": true}},
						bson.M{"$sort": bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
						bson.M{"$limit": 1},
						bson.M{"$project": bson.M{
							"title": 1, "thumbnail": 1, "duration": 1, "views": 1, "createdAt": 1,
						}},
					},
				}},
				bson.M{"$project": bson.M{
					"username":    1,
					"fullName":    1,
					"avatar.url":  1,
					"latestVideo": bson.M{"$first": "$latestVideo"},
				}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{"channel": bson.M{"$first": "$channel"}}}},
		{{Key: "$project", Value: bson.M{"channel": 1, "createdAt": 1}}},
	}
}
