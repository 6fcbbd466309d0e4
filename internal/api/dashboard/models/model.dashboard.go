// Package models holds the dashboard read models.
package models

// ChannelStats summarizes a channel. TotalLikes counts likes on its videos, tweets and comments.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos" bson:"totalVideos"`
	TotalViews       int64 `json:"totalViews" bson:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers" bson:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes" bson:"totalLikes"`
	TotalTweets      int64 `json:"totalTweets" bson:"totalTweets"`
}
