// Package userssvc reads and maintains users: channel profiles and watch history.
package userssvc

import (
	"context"
	"fmt"
	"strings"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	usersdto "github.com/Kapilrajreddy/youtube-api/internal/api/users/dto"
	usersmodels "github.com/Kapilrajreddy/youtube-api/internal/api/users/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService struct {
	*basesvc.BaseServiceMongoImpl[usersmodels.User]
}

func NewUserService() (*UserService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %w", common.ErrNotFound)
	}
	return NewUserServiceWith(coll), nil
}

func NewUserServiceWith(coll *mongo.Collection) *UserService {
	return &UserService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[usersmodels.User](coll)}
}

// UserExists backs the auth middleware.
func (s *UserService) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.DocumentExists(ctx, bson.M{"_id": id})
}

// NormalizeUsername is the stored form of a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// FindByUsername returns a NotFoundError for unknown usernames.
func (s *UserService) FindByUsername(ctx context.Context, username string) (usersmodels.User, error) {
	user, err := s.FindOne(ctx, bson.M{"username": NormalizeUsername(username)}, nil)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return user, common.NewNotFoundError("user not found")
		}
		return user, err
	}
	return user, nil
}

// Create inserts a user with an empty watch history. Duplicate usernames are a 409.
func (s *UserService) Create(ctx context.Context, input usersdto.UserCreateInput) (usersmodels.User, error) {
	user := usersmodels.User{
		Username:     NormalizeUsername(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:     strings.TrimSpace(input.FullName),
		WatchHistory: []primitive.ObjectID{},
	}
	if input.AvatarURL != "" {
		user.Avatar = &basemodels.Media{URL: input.AvatarURL}
	}
	return s.InsertOne(ctx, user)
}

// AddToWatchHistory records videoID once, however often it is watched.
func (s *UserService) AddToWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	res, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"watchHistory": videoID}},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if res.MatchedCount == 0 {
		return common.NewNotFoundError("user not found")
	}
	return nil
}

// ChannelProfile resolves username into its public profile as seen by actor.
func (s *UserService) ChannelProfile(ctx context.Context, username string, actor primitive.ObjectID) (usersmodels.ChannelProfile, error) {
	var isSubscribed interface{} = false
	if !actor.IsZero() {
		isSubscribed = bson.M{"$in": bson.A{actor, "$subscribers.subscriber"}}
	}
	subs := global.MongoDB_ColNames.Subscriptions
	pipeline := mongo.Pipeline{
		basesvc.MatchStage(bson.M{"username": NormalizeUsername(username)}),
		{{Key: "$lookup", Value: bson.M{
			"from": subs, "localField": "_id", "foreignField": "channel", "as": "subscribers",
			"pipeline": bson.A{bson.M{"$project": bson.M{"subscriber": 1}}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": subs, "localField": "_id", "foreignField": "subscriber", "as": "subscribedTo",
			"pipeline": bson.A{bson.M{"$project": bson.M{"_id": 1}}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"subscribersCount":          bson.M{"$size": "$subscribers"},
			"channelsSubscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribed":              isSubscribed,
		}}},
		{{Key: "$project", Value: bson.M{"subscribers": 0, "subscribedTo": 0, "watchHistory": 0}}},
	}
	profile, err := basesvc.AggregateOne[usersmodels.ChannelProfile](ctx, s.Collection(), pipeline)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return profile, common.NewNotFoundError("channel does not exist")
		}
		return profile, err
	}
	return profile, nil
}
