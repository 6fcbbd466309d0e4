// Package commentssvc adds, edits, deletes and lists comments and replies.
package commentssvc

import (
	"context"
	"fmt"
	"strings"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	commentsdto "github.com/Kapilrajreddy/youtube-api/internal/api/comments/dto"
	commentsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/comments/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentService struct {
	*basesvc.BaseServiceMongoImpl[commentsmodels.Comment]
	cascader *basesvc.Cascader
}

func NewCommentService() (*CommentService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Comments)
	if !exist {
		return nil, fmt.Errorf("failed to get comments collection: %w", common.ErrNotFound)
	}
	return NewCommentServiceWith(coll, basesvc.DefaultCascader()), nil
}

func NewCommentServiceWith(coll *mongo.Collection, cascader *basesvc.Cascader) *CommentService {
	return &CommentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[commentsmodels.Comment](coll),
		cascader:             cascader,
	}
}

func (s *CommentService) add(ctx context.Context, target basemodels.Target, actor primitive.ObjectID, input commentsdto.CommentInput) (commentsmodels.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return commentsmodels.Comment{}, common.NewValidationError("content is required")
	}
	comment, err := commentsmodels.NewComment(content, actor, target)
	if err != nil {
		return comment, err
	}
	if err := basesvc.EnsureTarget(ctx, target); err != nil {
		return comment, err
	}
	return s.InsertOne(ctx, comment)
}

func (s *CommentService) AddVideoComment(ctx context.Context, videoID, actor primitive.ObjectID, input commentsdto.CommentInput) (commentsmodels.Comment, error) {
	return s.add(ctx, basemodels.VideoTarget(videoID), actor, input)
}

func (s *CommentService) AddTweetComment(ctx context.Context, tweetID, actor primitive.ObjectID, input commentsdto.CommentInput) (commentsmodels.Comment, error) {
	return s.add(ctx, basemodels.TweetTarget(tweetID), actor, input)
}

// AddReply attaches a comment to another comment.
func (s *CommentService) AddReply(ctx context.Context, parentID, actor primitive.ObjectID, input commentsdto.CommentInput) (commentsmodels.Comment, error) {
	return s.add(ctx, basemodels.CommentTarget(parentID), actor, input)
}

// owned loads the comment and checks that actor wrote it.
func (s *CommentService) owned(ctx context.Context, commentID, actor primitive.ObjectID) (commentsmodels.Comment, error) {
	comment, err := s.FindOneById(ctx, commentID)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return comment, common.NewNotFoundError("comment not found")
		}
		return comment, err
	}
	if comment.Owner != actor {
		return comment, common.NewAuthorizationError("you are not the owner of this comment")
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, actor primitive.ObjectID, input commentsdto.CommentInput) (commentsmodels.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return commentsmodels.Comment{}, common.NewValidationError("content is required")
	}
	if _, err := s.owned(ctx, commentID, actor); err != nil {
		return commentsmodels.Comment{}, err
	}
	return s.UpdateById(ctx, commentID, &basesvc.UpdateData{Set: bson.M{"content": content}})
}

// Delete removes the comment, its replies at every depth and the likes on all of them.
func (s *CommentService) Delete(ctx context.Context, commentID, actor primitive.ObjectID) (commentsmodels.Comment, error) {
	comment, err := s.owned(ctx, commentID, actor)
	if err != nil {
		return comment, err
	}
	err = s.cascader.Run(ctx,
		func(ctx context.Context) error {
			_, err := s.DeleteById(ctx, commentID)
			return err
		},
		func(ctx context.Context) ([]basesvc.CascadeStep, error) {
			return s.CascadeFor(ctx, basemodels.CommentTarget(commentID))
		},
	)
	return comment, err
}

// CascadeFor lists the dependents of target once it is deleted: likes on
// target, every comment attached to it directly or through replies, and the
// likes on those comments. A comment target is not itself included.
func (s *CommentService) CascadeFor(ctx context.Context, target basemodels.Target) ([]basesvc.CascadeStep, error) {
	names := global.MongoDB_ColNames
	steps := []basesvc.CascadeStep{{Collection: names.Likes, Filter: target.Filter()}}

	var (
		owned    []primitive.ObjectID
		frontier []primitive.ObjectID
		seen     = map[primitive.ObjectID]bool{}
	)
	if target.Kind == basemodels.TargetComment {
		frontier = []primitive.ObjectID{target.ID}
		seen[target.ID] = true
	} else {
		roots, err := s.idsOf(ctx, target.Filter())
		if err != nil {
			return nil, err
		}
		for _, id := range roots {
			seen[id] = true
		}
		owned = append(owned, roots...)
		frontier = roots
	}

	for len(frontier) > 0 {
		children, err := s.idsOf(ctx, bson.M{"comment": bson.M{"$in": frontier}})
		if err != nil {
			return nil, err
		}
		next := make([]primitive.ObjectID, 0, len(children))
		for _, id := range children {
			if !seen[id] {
				seen[id] = true
				next = append(next, id)
			}
		}
		owned = append(owned, next...)
		frontier = next
	}

	if len(owned) > 0 {
		steps = append(steps,
			basesvc.CascadeStep{Collection: names.Likes, Filter: bson.M{"comment": bson.M{"$in": owned}}},
			basesvc.CascadeStep{Collection: names.Comments, Filter: bson.M{"_id": bson.M{"$in": owned}}},
		)
	}
	return steps, nil
}

func (s *CommentService) idsOf(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	cursor, err := s.Collection().Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// List pages the comments attached to target, newest first.
func (s *CommentService) List(ctx context.Context, target basemodels.Target, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[commentsmodels.CommentView], error) {
	if err := basesvc.EnsureTarget(ctx, target); err != nil {
		return nil, err
	}
	pipeline := []bson.D{
		basesvc.MatchStage(target.Filter()),
		basesvc.NewestFirst(),
	}
	return basesvc.Paginate[commentsmodels.CommentView](ctx, s.Collection(), pipeline, decorate(actor), page, limit)
}

func decorate(actor primitive.ObjectID) []bson.D {
	return basesvc.Stages(
		basesvc.OwnerLookup("owner", "owner"),
		basesvc.LikesLookup("comment", actor),
		basesvc.CountLookup(global.MongoDB_ColNames.Comments, "_id", "comment", "repliesCount"),
	)
}
