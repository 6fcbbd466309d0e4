// Package models defines the tweets collection.
package models

import (
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tweet struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"single;compound:tweet_owner_created"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"compound:tweet_owner_created,order:-1"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// TweetView is a tweet as listed on a channel.
type TweetView struct {
	ID            primitive.ObjectID       `json:"_id" bson:"_id"`
	Content       string                   `json:"content" bson:"content"`
	Owner         *basemodels.OwnerSummary `json:"owner" bson:"owner"`
	LikesCount    int64                    `json:"likesCount" bson:"likesCount"`
	IsLiked       bool                     `json:"isLiked" bson:"isLiked"`
	CommentsCount int64                    `json:"commentsCount" bson:"commentsCount"`
	CreatedAt     int64                    `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64                    `json:"updatedAt" bson:"updatedAt"`
}
