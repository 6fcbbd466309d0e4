// Package models defines the users collection.
package models

import (
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a channel owner and viewer. WatchHistory has set semantics and is
// always stored as an array so $addToSet can apply.
type User struct {
	ID           primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username" index:"unique"`
	Email        string               `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	FullName     string               `json:"fullName" bson:"fullName"`
	Avatar       *basemodels.Media    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CoverImage   *basemodels.Media    `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	WatchHistory []primitive.ObjectID `json:"watchHistory" bson:"watchHistory"`
	CreatedAt    int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                `json:"updatedAt" bson:"updatedAt"`
}

// ChannelProfile is the public view of a user with subscription counters.
type ChannelProfile struct {
	ID                        primitive.ObjectID `json:"_id" bson:"_id"`
	Username                  string             `json:"username" bson:"username"`
	FullName                  string             `json:"fullName" bson:"fullName"`
	Email                     string             `json:"email,omitempty" bson:"email,omitempty"`
	Avatar                    *basemodels.Media  `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CoverImage                *basemodels.Media  `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	SubscribersCount          int64              `json:"subscribersCount" bson:"subscribersCount"`
	ChannelsSubscribedToCount int64              `json:"channelsSubscribedToCount" bson:"channelsSubscribedToCount"`
	IsSubscribed              bool               `json:"isSubscribed" bson:"isSubscribed"`
}
