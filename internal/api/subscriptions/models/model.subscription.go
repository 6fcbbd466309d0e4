// Package models defines the subscriptions collection.
package models

import (
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription means Subscriber follows Channel. At most one exists per pair.
type Subscription struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Subscriber primitive.ObjectID `json:"subscriber" bson:"subscriber" index:"single;compound:subscription_unique"`
	Channel    primitive.ObjectID `json:"channel" bson:"channel" index:"single;compound:subscription_unique"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

type SubscriberSummary struct {
	basemodels.OwnerSummary `bson:",inline"`
	SubscribersCount        int64 `json:"subscribersCount" bson:"subscribersCount"`
	// SubscribedToSubscriber reports whether the channel follows its subscriber back.
	SubscribedToSubscriber bool `json:"subscribedToSubscriber" bson:"subscribedToSubscriber"`
}

// SubscriberView is one entry of a channel's subscriber list.
type SubscriberView struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Subscriber *SubscriberSummary `json:"subscriber" bson:"subscriber"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
}

type LatestVideo struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Thumbnail basemodels.Media   `json:"thumbnail" bson:"thumbnail"`
	Duration  float64            `json:"duration" bson:"duration"`
	Views     int64              `json:"views" bson:"views"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
}

type ChannelSummary struct {
	basemodels.OwnerSummary `bson:",inline"`
	LatestVideo             *LatestVideo `json:"latestVideo" bson:"latestVideo,omitempty"`
}

// ChannelView is one entry of the channels a user subscribes to.
type ChannelView struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Channel   *ChannelSummary    `json:"channel" bson:"channel"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
}
