// Package models defines the playlists collection.
package models

import (
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist holds each video at most once.
type Playlist struct {
	ID          primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner" index:"single"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos" index:"single"`
	CreatedAt   int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt" bson:"updatedAt"`
}

type PlaylistVideo struct {
	ID        primitive.ObjectID       `json:"_id" bson:"_id"`
	Title     string                   `json:"title" bson:"title"`
	Thumbnail basemodels.Media         `json:"thumbnail" bson:"thumbnail"`
	Duration  float64                  `json:"duration" bson:"duration"`
	Views     int64                    `json:"views" bson:"views"`
	Owner     *basemodels.OwnerSummary `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt int64                    `json:"createdAt" bson:"createdAt"`
}

// PlaylistView is a playlist with its visible videos resolved.
type PlaylistView struct {
	ID          primitive.ObjectID       `json:"_id" bson:"_id"`
	Name        string                   `json:"name" bson:"name"`
	Description string                   `json:"description" bson:"description"`
	Owner       *basemodels.OwnerSummary `json:"owner" bson:"owner"`
	Videos      []PlaylistVideo          `json:"videos" bson:"videos"`
	TotalVideos int64                    `json:"totalVideos" bson:"totalVideos"`
	TotalViews  int64                    `json:"totalViews" bson:"totalViews"`
	CreatedAt   int64                    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                    `json:"updatedAt" bson:"updatedAt"`
}
