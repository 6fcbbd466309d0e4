// Package tweetssvc manages the short text posts of a channel.
package tweetssvc

import (
	"context"
	"fmt"
	"strings"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	commentssvc "github.com/Kapilrajreddy/youtube-api/internal/api/comments/service"
	tweetsdto "github.com/Kapilrajreddy/youtube-api/internal/api/tweets/dto"
	tweetsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/tweets/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TweetService struct {
	*basesvc.BaseServiceMongoImpl[tweetsmodels.Tweet]
	comments *commentssvc.CommentService
	cascader *basesvc.Cascader
}

func NewTweetService() (*TweetService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tweets)
	if !exist {
		return nil, fmt.Errorf("failed to get tweets collection: %w", common.ErrNotFound)
	}
	comments, err := commentssvc.NewCommentService()
	if err != nil {
		return nil, err
	}
	return NewTweetServiceWith(coll, comments, basesvc.DefaultCascader()), nil
}

func NewTweetServiceWith(coll *mongo.Collection, comments *commentssvc.CommentService, cascader *basesvc.Cascader) *TweetService {
	return &TweetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[tweetsmodels.Tweet](coll),
		comments:             comments,
		cascader:             cascader,
	}
}

func (s *TweetService) Create(ctx context.Context, actor primitive.ObjectID, input tweetsdto.TweetInput) (tweetsmodels.Tweet, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return tweetsmodels.Tweet{}, common.NewValidationError("content is required")
	}
	return s.InsertOne(ctx, tweetsmodels.Tweet{Content: content, Owner: actor})
}

func (s *TweetService) owned(ctx context.Context, tweetID, actor primitive.ObjectID) (tweetsmodels.Tweet, error) {
	tweet, err := s.FindOneById(ctx, tweetID)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return tweet, common.NewNotFoundError("tweet not found")
		}
		return tweet, err
	}
	if tweet.Owner != actor {
		return tweet, common.NewAuthorizationError("you are not the owner of this tweet")
	}
	return tweet, nil
}

func (s *TweetService) Update(ctx context.Context, tweetID, actor primitive.ObjectID, input tweetsdto.TweetInput) (tweetsmodels.Tweet, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return tweetsmodels.Tweet{}, common.NewValidationError("content is required")
	}
	if _, err := s.owned(ctx, tweetID, actor); err != nil {
		return tweetsmodels.Tweet{}, err
	}
	return s.UpdateById(ctx, tweetID, &basesvc.UpdateData{Set: bson.M{"content": content}})
}

// Delete removes the tweet together with its likes and comment threads.
func (s *TweetService) Delete(ctx context.Context, tweetID, actor primitive.ObjectID) (tweetsmodels.Tweet, error) {
	tweet, err := s.owned(ctx, tweetID, actor)
	if err != nil {
		return tweet, err
	}
	err = s.cascader.Run(ctx,
		func(ctx context.Context) error {
			_, err := s.DeleteById(ctx, tweetID)
			return err
		},
		func(ctx context.Context) ([]basesvc.CascadeStep, error) {
			return s.comments.CascadeFor(ctx, basemodels.TweetTarget(tweetID))
		},
	)
	return tweet, err
}

// ListByUser pages the tweets of userID, newest first.
func (s *TweetService) ListByUser(ctx context.Context, userID, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[tweetsmodels.TweetView], error) {
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, userID, "user"); err != nil {
		return nil, err
	}
	pipeline := []bson.D{
		basesvc.MatchStage(bson.M{"owner": userID}),
		basesvc.NewestFirst(),
	}
	decorate := basesvc.Stages(
		basesvc.OwnerLookup("owner", "owner"),
		basesvc.LikesLookup("tweet", actor),
		basesvc.CountLookup(global.MongoDB_ColNames.Comments, "_id", "tweet", "commentsCount"),
	)
	return basesvc.Paginate[tweetsmodels.TweetView](ctx, s.Collection(), pipeline, decorate, page, limit)
}
