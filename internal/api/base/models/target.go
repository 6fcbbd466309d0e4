package models

import (
	"fmt"

	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind names what a Comment or Like is attached to. The kind doubles as the bson field name.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetTweet   TargetKind = "tweet"
	TargetComment TargetKind = "comment"
)

// Target is exactly one of Video(id) | Tweet(id) | Comment(id).
type Target struct {
	Kind TargetKind
	ID   primitive.ObjectID
}

func VideoTarget(id primitive.ObjectID) Target   { return Target{Kind: TargetVideo, ID: id} }
func TweetTarget(id primitive.ObjectID) Target   { return Target{Kind: TargetTweet, ID: id} }
func CommentTarget(id primitive.ObjectID) Target { return Target{Kind: TargetComment, ID: id} }

func (t Target) Valid() bool {
	switch t.Kind {
	case TargetVideo, TargetTweet, TargetComment:
		return !t.ID.IsZero()
	}
	return false
}

// Field is the bson field that stores this target.
func (t Target) Field() string {
	return string(t.Kind)
}

// Filter matches documents attached to t.
func (t Target) Filter() bson.M {
	return bson.M{t.Field(): t.ID}
}

func (t Target) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.ID.Hex())
}

// TargetRefs is the storage form of a Target: three optional references, one populated.
// Embed it inline; build it only through RefsFor.
type TargetRefs struct {
	Video   *primitive.ObjectID `json:"video,omitempty" bson:"video,omitempty" index:"single"`
	Tweet   *primitive.ObjectID `json:"tweet,omitempty" bson:"tweet,omitempty" index:"single"`
	Comment *primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty" index:"single"`
}

// RefsFor maps a valid target onto its storage fields.
func RefsFor(t Target) (TargetRefs, error) {
	if !t.Valid() {
		return TargetRefs{}, common.NewValidationError("invalid attachment target")
	}
	id := t.ID
	switch t.Kind {
	case TargetVideo:
		return TargetRefs{Video: &id}, nil
	case TargetTweet:
		return TargetRefs{Tweet: &id}, nil
	default:
		return TargetRefs{Comment: &id}, nil
	}
}

// Target decodes the stored references; anything but exactly one populated field is an error.
func (r TargetRefs) Target() (Target, error) {
	var found []Target
	if r.Video != nil {
		found = append(found, VideoTarget(*r.Video))
	}
	if r.Tweet != nil {
		found = append(found, TweetTarget(*r.Tweet))
	}
	if r.Comment != nil {
		found = append(found, CommentTarget(*r.Comment))
	}
	if len(found) != 1 {
		return Target{}, fmt.Errorf("expected exactly one attachment target, found %d", len(found))
	}
	return found[0], nil
}
