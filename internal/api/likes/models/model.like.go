// Package models defines the likes collection.
package models

import (
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like links a user to exactly one video, comment or tweet. The compound
// unique index allows one like per user and target.
type Like struct {
	ID        primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	LikedBy   primitive.ObjectID  `json:"likedBy" bson:"likedBy" index:"single;compound:like_target_unique"`
	Video     *primitive.ObjectID `json:"video,omitempty" bson:"video,omitempty" index:"single;compound:like_target_unique"`
	Comment   *primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty" index:"single;compound:like_target_unique"`
	Tweet     *primitive.ObjectID `json:"tweet,omitempty" bson:"tweet,omitempty" index:"single;compound:like_target_unique"`
	CreatedAt int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64               `json:"updatedAt" bson:"updatedAt"`
}

func NewLike(likedBy primitive.ObjectID, target basemodels.Target) (Like, error) {
	refs, err := basemodels.RefsFor(target)
	if err != nil {
		return Like{}, err
	}
	return Like{LikedBy: likedBy, Video: refs.Video, Comment: refs.Comment, Tweet: refs.Tweet}, nil
}

func (l Like) Target() (basemodels.Target, error) {
	return basemodels.TargetRefs{Video: l.Video, Comment: l.Comment, Tweet: l.Tweet}.Target()
}
