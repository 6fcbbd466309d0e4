// Package playlistssvc manages user playlists.
package playlistssvc

import (
	"context"
	"fmt"
	"strings"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	playlistsdto "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/dto"
	playlistsmodels "github.com/Kapilrajreddy/youtube-api/internal/api/playlists/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PlaylistService struct {
	*basesvc.BaseServiceMongoImpl[playlistsmodels.Playlist]
}

func NewPlaylistService() (*PlaylistService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Playlists)
	if !exist {
		return nil, fmt.Errorf("failed to get playlists collection: %w", common.ErrNotFound)
	}
	return NewPlaylistServiceWith(coll), nil
}

func NewPlaylistServiceWith(coll *mongo.Collection) *PlaylistService {
	return &PlaylistService{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[playlistsmodels.Playlist](coll)}
}

func (s *PlaylistService) Create(ctx context.Context, actor primitive.ObjectID, input playlistsdto.PlaylistCreateInput) (playlistsmodels.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return playlistsmodels.Playlist{}, common.NewValidationError("name is required")
	}
	return s.InsertOne(ctx, playlistsmodels.Playlist{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Owner:       actor,
		Videos:      []primitive.ObjectID{},
	})
}

func (s *PlaylistService) owned(ctx context.Context, playlistID, actor primitive.ObjectID) (playlistsmodels.Playlist, error) {
	playlist, err := s.FindOneById(ctx, playlistID)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return playlist, common.NewNotFoundError("playlist not found")
		}
		return playlist, err
	}
	if playlist.Owner != actor {
		return playlist, common.NewAuthorizationError("you are not the owner of this playlist")
	}
	return playlist, nil
}

// updateSet builds the $set of a partial update; absent fields are left alone.
func updateSet(input playlistsdto.PlaylistUpdateInput) (bson.M, error) {
	set := bson.M{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, common.NewValidationError("name cannot be empty")
		}
		set["name"] = name
	}
	if input.Description != nil {
		set["description"] = strings.TrimSpace(*input.Description)
	}
	if len(set) == 0 {
		return nil, common.NewValidationError("name or description is required")
	}
	return set, nil
}

func (s *PlaylistService) Update(ctx context.Context, playlistID, actor primitive.ObjectID, input playlistsdto.PlaylistUpdateInput) (playlistsmodels.Playlist, error) {
	set, err := updateSet(input)
	if err != nil {
		return playlistsmodels.Playlist{}, err
	}
	if _, err := s.owned(ctx, playlistID, actor); err != nil {
		return playlistsmodels.Playlist{}, err
	}
	return s.UpdateOne(ctx, bson.M{"_id": playlistID, "owner": actor}, &basesvc.UpdateData{Set: set})
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, actor primitive.ObjectID) (playlistsmodels.Playlist, error) {
	if _, err := s.owned(ctx, playlistID, actor); err != nil {
		return playlistsmodels.Playlist{}, err
	}
	return s.DeleteById(ctx, playlistID)
}

// AddVideo adds videoID once; adding it again changes nothing.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actor primitive.ObjectID) (playlistsmodels.Playlist, error) {
	if _, err := s.owned(ctx, playlistID, actor); err != nil {
		return playlistsmodels.Playlist{}, err
	}
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Videos, videoID, "video"); err != nil {
		return playlistsmodels.Playlist{}, err
	}
	return s.UpdateOne(ctx, bson.M{"_id": playlistID, "owner": actor},
		&basesvc.UpdateData{AddToSet: bson.M{"videos": videoID}})
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actor primitive.ObjectID) (playlistsmodels.Playlist, error) {
	if _, err := s.owned(ctx, playlistID, actor); err != nil {
		return playlistsmodels.Playlist{}, err
	}
	return s.UpdateOne(ctx, bson.M{"_id": playlistID, "owner": actor},
		&basesvc.UpdateData{Pull: bson.M{"videos": videoID}})
}

// GetByID resolves the playlist's videos that actor may see.
func (s *PlaylistService) GetByID(ctx context.Context, playlistID, actor primitive.ObjectID) (playlistsmodels.PlaylistView, error) {
	pipeline := append(mongo.Pipeline{basesvc.MatchStage(bson.M{"_id": playlistID})}, viewDecorate(actor)...)
	view, err := basesvc.AggregateOne[playlistsmodels.PlaylistView](ctx, s.Collection(), pipeline)
	if err != nil && common.StatusOf(err) == common.StatusNotFound {
		return view, common.NewNotFoundError("playlist not found")
	}
	return view, err
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[playlistsmodels.PlaylistView], error) {
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, userID, "user"); err != nil {
		return nil, err
	}
	pipeline := []bson.D{
		basesvc.MatchStage(bson.M{"owner": userID}),
		basesvc.NewestFirst(),
	}
	return basesvc.Paginate[playlistsmodels.PlaylistView](ctx, s.Collection(), pipeline, viewDecorate(actor), page, limit)
}

func viewDecorate(actor primitive.ObjectID) []bson.D {
	videos := bson.A{
		bson.M{"$match": bson.M{"$or": bson.A{
			bson.M{"isPublished": true},
			bson.M{"owner": actor},
		}}},
	}
	for _, stage := range basesvc.OwnerLookup("owner", "owner") {
		videos = append(videos, stage)
	}
	videos = append(videos, bson.M{"$project": bson.M{
		"title": 1, "thumbnail": 1, "duration": 1, "views": 1, "owner": 1, "createdAt": 1,
	}})

	return basesvc.Stages(
		[]bson.D{
			{{Key: "$lookup", Value: bson.M{
				"from":         global.MongoDB_ColNames.Videos,
				"localField":   "videos",
				"foreignField": "_id",
				"as":           "videos",
				"pipeline":     videos,
			}}},
			{{Key: "$addFields", Value: bson.M{
				"totalVideos": bson.M{"$size": "$videos"},
				"totalViews":  bson.M{"$sum": "$videos.views"},
			}}},
		},
		basesvc.OwnerLookup("owner", "owner"),
	)
}
