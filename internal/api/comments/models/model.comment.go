// Package models defines the comments collection.
package models

import (
	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is attached to a video, a tweet or another comment (a reply).
type Comment struct {
	ID                    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Content               string             `json:"content" bson:"content"`
	Owner                 primitive.ObjectID `json:"owner" bson:"owner" index:"single"`
	basemodels.TargetRefs `bson:",inline"`
	CreatedAt             int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt             int64 `json:"updatedAt" bson:"updatedAt"`
}

// NewComment is the only way to build a Comment, so exactly one target is set.
func NewComment(content string, owner primitive.ObjectID, target basemodels.Target) (Comment, error) {
	refs, err := basemodels.RefsFor(target)
	if err != nil {
		return Comment{}, err
	}
	return Comment{Content: content, Owner: owner, TargetRefs: refs}, nil
}

// CommentView is a comment as listed: owner projection, like state and reply count.
type CommentView struct {
	ID                    primitive.ObjectID       `json:"_id" bson:"_id"`
	Content               string                   `json:"content" bson:"content"`
	Owner                 *basemodels.OwnerSummary `json:"owner" bson:"owner"`
	basemodels.TargetRefs `bson:",inline"`
	LikesCount            int64 `json:"likesCount" bson:"likesCount"`
	IsLiked               bool  `json:"isLiked" bson:"isLiked"`
	RepliesCount          int64 `json:"repliesCount" bson:"repliesCount"`
	CreatedAt             int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt             int64 `json:"updatedAt" bson:"updatedAt"`
}
