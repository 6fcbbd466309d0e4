// Package models defines the videos collection and its read models.
package models

import (
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is an uploaded video. Views only ever grows by one per fetch.
type Video struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner" index:"single;compound:owner_created"`
	Title       string             `json:"title" bson:"title" index:"text,weight:10"`
	Description string             `json:"description" bson:"description" index:"text"`
	VideoFile   basemodels.Media   `json:"videoFile" bson:"videoFile"`
	Thumbnail   basemodels.Media   `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views" index:"single,order:-1"`
	IsPublished bool               `json:"isPublished" bson:"isPublished" index:"single"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt" index:"single,order:-1;compound:owner_created,order:-1"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// VideoListItem is a video in a listing with its owner projection and counters.
type VideoListItem struct {
	ID            primitive.ObjectID       `json:"_id" bson:"_id"`
	Owner         *basemodels.OwnerSummary `json:"owner,omitempty" bson:"owner,omitempty"`
	Title         string                   `json:"title" bson:"title"`
	Description   string                   `json:"description" bson:"description"`
	VideoFile     basemodels.Media         `json:"videoFile" bson:"videoFile"`
	Thumbnail     basemodels.Media         `json:"thumbnail" bson:"thumbnail"`
	Duration      float64                  `json:"duration" bson:"duration"`
	Views         int64                    `json:"views" bson:"views"`
	IsPublished   bool                     `json:"isPublished" bson:"isPublished"`
	LikesCount    int64                    `json:"likesCount" bson:"likesCount"`
	IsLiked       bool                     `json:"isLiked" bson:"isLiked"`
	CommentsCount int64                    `json:"commentsCount" bson:"commentsCount"`
	CreatedAt     int64                    `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64                    `json:"updatedAt" bson:"updatedAt"`
}

// ChannelOwner is the owner block of a video detail.
type ChannelOwner struct {
	basemodels.OwnerSummary `bson:",inline"`
	SubscribersCount        int64 `json:"subscribersCount" bson:"subscribersCount"`
	IsSubscribed            bool  `json:"isSubscribed" bson:"isSubscribed"`
}

// VideoDetail is a single video as watched.
type VideoDetail struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Owner       *ChannelOwner      `json:"owner,omitempty" bson:"owner,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	VideoFile   basemodels.Media   `json:"videoFile" bson:"videoFile"`
	Thumbnail   basemodels.Media   `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	LikesCount  int64              `json:"likesCount" bson:"likesCount"`
	IsLiked     bool               `json:"isLiked" bson:"isLiked"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
