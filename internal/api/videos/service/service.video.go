// Package videossvc publishes, edits, deletes and serves videos.
package videossvc

import (
	"context"
	"fmt"
	"strings"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	commentssvc "github.com/Kapilrajreddy/youtube-api/internal/api/comments/service"
	"github.com/Kapilrajreddy/youtube-api/internal/api/events"
	userssvc "github.com/Kapilrajreddy/youtube-api/internal/api/users/service"
	videosdto "github.com/Kapilrajreddy/youtube-api/internal/api/videos/dto"
	videosmodels "github.com/Kapilrajreddy/youtube-api/internal/api/videos/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"
	"github.com/Kapilrajreddy/youtube-api/internal/media"
	"github.com/Kapilrajreddy/youtube-api/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VideoService struct {
	*basesvc.BaseServiceMongoImpl[videosmodels.Video]
	users    *userssvc.UserService
	comments *commentssvc.CommentService
	store    media.Store
	cascader *basesvc.Cascader
}

func NewVideoService() (*VideoService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %w", common.ErrNotFound)
	}
	users, err := userssvc.NewUserService()
	if err != nil {
		return nil, err
	}
	comments, err := commentssvc.NewCommentService()
	if err != nil {
		return nil, err
	}
	return NewVideoServiceWith(coll, users, comments, global.MediaStore, basesvc.DefaultCascader()), nil
}

func NewVideoServiceWith(coll *mongo.Collection, users *userssvc.UserService, comments *commentssvc.CommentService, store media.Store, cascader *basesvc.Cascader) *VideoService {
	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videosmodels.Video](coll),
		users:                users,
		comments:             comments,
		store:                store,
		cascader:             cascader,
	}
}

func uploadFailed(what string, err error) error {
	logger.GetErrorLogger().WithField("asset", what).WithError(err).Error("media upload failed")
	return common.NewError(common.ErrCodeStorage, what+" upload failed", common.StatusInternalServerError, nil)
}

func (s *VideoService) upload(ctx context.Context, what, path string) (*media.Asset, error) {
	if s.store == nil {
		return nil, common.NewInternalError("media store is not configured", nil)
	}
	asset, err := s.store.Upload(ctx, path)
	if err != nil {
		return nil, uploadFailed(what, err)
	}
	return asset, nil
}

// Publish uploads both files and stores the video unpublished. When a later
// step fails the assets already uploaded are removed again.
func (s *VideoService) Publish(ctx context.Context, actor primitive.ObjectID, input videosdto.PublishInput, videoPath, thumbnailPath string) (videosmodels.Video, error) {
	defer media.Discard(videoPath, thumbnailPath)

	var video videosmodels.Video
	title, description := strings.TrimSpace(input.Title), strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return video, common.NewValidationError(common.MsgRequiredFields)
	}
	if videoPath == "" {
		return video, common.NewValidationError("videoFile is required")
	}
	if thumbnailPath == "" {
		return video, common.NewValidationError("thumbnail is required")
	}

	file, err := s.upload(ctx, "video", videoPath)
	if err != nil {
		return video, err
	}
	thumb, err := s.upload(ctx, "thumbnail", thumbnailPath)
	if err != nil {
		media.DeleteBestEffort(ctx, s.store, file.PublicID, media.KindVideo)
		return video, err
	}

	video, err = s.InsertOne(ctx, videosmodels.Video{
		Owner:       actor,
		Title:       title,
		Description: description,
		VideoFile:   basemodels.Media{URL: file.URL, PublicID: file.PublicID},
		Thumbnail:   basemodels.Media{URL: thumb.URL, PublicID: thumb.PublicID},
		Duration:    file.Duration,
		IsPublished: false,
	})
	if err != nil {
		media.DeleteBestEffort(ctx, s.store, file.PublicID, media.KindVideo)
		media.DeleteBestEffort(ctx, s.store, thumb.PublicID, media.KindImage)
	}
	return video, err
}

func (s *VideoService) owned(ctx context.Context, videoID, actor primitive.ObjectID) (videosmodels.Video, error) {
	video, err := s.FindOneById(ctx, videoID)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return video, common.NewNotFoundError("video not found")
		}
		return video, err
	}
	if video.Owner != actor {
		return video, common.NewAuthorizationError("you are not the owner of this video")
	}
	return video, nil
}

// visibleTo matches a video that actor may watch.
func visibleTo(videoID, actor primitive.ObjectID) bson.M {
	return bson.M{
		"_id": videoID,
		"$or": bson.A{bson.M{"isPublished": true}, bson.M{"owner": actor}},
	}
}

// GetByID counts one view, records the video in actor's watch history and
// returns the detail view. Unpublished videos exist only for their owner.
func (s *VideoService) GetByID(ctx context.Context, videoID, actor primitive.ObjectID) (videosmodels.VideoDetail, error) {
	var detail videosmodels.VideoDetail

	res, err := s.Collection().UpdateOne(ctx, visibleTo(videoID, actor), bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return detail, common.ConvertMongoError(err)
	}
	if res.MatchedCount == 0 {
		return detail, common.NewNotFoundError("video not found")
	}

	if !actor.IsZero() {
		if err := s.users.AddToWatchHistory(ctx, actor, videoID); err != nil {
			return detail, err
		}
	}

	detail, err = basesvc.AggregateOne[videosmodels.VideoDetail](ctx, s.Collection(), detailPipeline(videoID, actor))
	if err != nil && common.StatusOf(err) == common.StatusNotFound {
		return detail, common.NewNotFoundError("video not found")
	}
	return detail, err
}

func detailPipeline(videoID, actor primitive.ObjectID) mongo.Pipeline {
	var isSubscribed interface{} = bson.M{"$literal": false}
	if !actor.IsZero() {
		isSubscribed = bson.M{"$in": bson.A{actor, "$subscribers.subscriber"}}
	}
	pipeline := mongo.Pipeline{
		basesvc.MatchStage(bson.M{"_id": videoID}),
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         global.MongoDB_ColNames.Subscriptions,
					"localField":   "_id",
					"foreignField": "channel",
					"as":           "subscribers",
					"pipeline":     bson.A{bson.M{"$project": bson.M{"subscriber": 1}}},
				}},
				bson.M{"$project": bson.M{
					"username":         1,
					"fullName":         1,
					"avatar.url":       1,
					"subscribersCount": bson.M{"$size": "$subscribers"},
					"isSubscribed":     isSubscribed,
				}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{"owner": bson.M{"$first": "$owner"}}}},
	}
	return append(pipeline, basesvc.LikesLookup("video", actor)...)
}

// Update replaces title and description and, when thumbnailPath is set, the
// thumbnail. The previous thumbnail is removed only after the update committed.
func (s *VideoService) Update(ctx context.Context, videoID, actor primitive.ObjectID, input videosdto.UpdateInput, thumbnailPath string) (videosmodels.Video, error) {
	defer media.Discard(thumbnailPath)

	title, description := strings.TrimSpace(input.Title), strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return videosmodels.Video{}, common.NewValidationError("title and description are required")
	}
	current, err := s.owned(ctx, videoID, actor)
	if err != nil {
		return current, err
	}

	set := bson.M{"title": title, "description": description}
	var thumb *media.Asset
	if thumbnailPath != "" {
		if thumb, err = s.upload(ctx, "thumbnail", thumbnailPath); err != nil {
			return current, err
		}
		set["thumbnail"] = basemodels.Media{URL: thumb.URL, PublicID: thumb.PublicID}
	}

	updated, err := s.UpdateOne(ctx, bson.M{"_id": videoID, "owner": actor}, &basesvc.UpdateData{Set: set})
	if err != nil {
		if thumb != nil {
			media.DeleteBestEffort(ctx, s.store, thumb.PublicID, media.KindImage)
		}
		return current, err
	}
	if thumb != nil {
		media.DeleteBestEffort(ctx, s.store, current.Thumbnail.PublicID, media.KindImage)
	}
	return updated, nil
}

// Delete removes the video, everything attached to it and its media.
func (s *VideoService) Delete(ctx context.Context, videoID, actor primitive.ObjectID) (videosmodels.Video, error) {
	video, err := s.owned(ctx, videoID, actor)
	if err != nil {
		return video, err
	}
	err = s.cascader.Run(ctx,
		func(ctx context.Context) error {
			_, err := s.DeleteById(ctx, videoID)
			return err
		},
		func(ctx context.Context) ([]basesvc.CascadeStep, error) {
			steps, err := s.comments.CascadeFor(ctx, basemodels.VideoTarget(videoID))
			if err != nil {
				return nil, err
			}
			return append(steps, referenceSteps(videoID)...), nil
		},
	)
	if err != nil {
		return video, err
	}
	media.DeleteBestEffort(ctx, s.store, video.VideoFile.PublicID, media.KindVideo)
	media.DeleteBestEffort(ctx, s.store, video.Thumbnail.PublicID, media.KindImage)
	return video, nil
}

// referenceSteps pull a deleted video out of watch histories and playlists.
func referenceSteps(videoID primitive.ObjectID) []basesvc.CascadeStep {
	names := global.MongoDB_ColNames
	return []basesvc.CascadeStep{
		{
			Collection: names.Users,
			Filter:     bson.M{"watchHistory": videoID},
			Update:     bson.M{"$pull": bson.M{"watchHistory": videoID}},
		},
		{
			Collection: names.Playlists,
			Filter:     bson.M{"videos": videoID},
			Update:     bson.M{"$pull": bson.M{"videos": videoID}},
		},
	}
}

// TogglePublish flips isPublished in one atomic update and returns the new value.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, actor primitive.ObjectID) (bool, error) {
	if _, err := s.owned(ctx, videoID, actor); err != nil {
		return false, err
	}
	update := bson.A{bson.M{"$set": bson.M{
		"isPublished": bson.M{"$not": bson.A{"$isPublished"}},
		"updatedAt":   utility.CurrentTimeInMilli(),
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var video videosmodels.Video
	err := s.Collection().FindOneAndUpdate(ctx, bson.M{"_id": videoID, "owner": actor}, update, opts).Decode(&video)
	if err != nil {
		if common.StatusOf(common.ConvertMongoError(err)) == common.StatusNotFound {
			return false, common.NewNotFoundError("video not found")
		}
		return false, common.ConvertMongoError(err)
	}
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.Collection().Name(),
		Operation:      events.OpUpdate,
		Document:       video,
	})
	return video.IsPublished, nil
}
