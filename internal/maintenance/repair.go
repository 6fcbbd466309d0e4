// Package maintenance removes what best-effort cascades can leave behind when
// they run without a transaction.
package maintenance

import (
	"context"
	"fmt"

	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxPasses bounds the orphan sweep; each pass can orphan one more level of replies.
const maxPasses = 16

// Reference is a document field pointing at another collection's _id.
type Reference struct {
	Collection string
	Field      string
	Target     string
}

func (r Reference) String() string {
	return fmt.Sprintf("%s.%s -> %s", r.Collection, r.Field, r.Target)
}

// OrphanReferences lists the single-valued references whose dangling documents are deleted.
func OrphanReferences() []Reference {
	n := global.MongoDB_ColNames
	return []Reference{
		{n.Likes, "video", n.Videos},
		{n.Likes, "comment", n.Comments},
		{n.Likes, "tweet", n.Tweets},
		{n.Comments, "video", n.Videos},
		{n.Comments, "tweet", n.Tweets},
		{n.Comments, "comment", n.Comments},
		{n.Subscriptions, "channel", n.Users},
		{n.Subscriptions, "subscriber", n.Users},
	}
}

// ListReferences lists the array references whose dangling entries are pulled.
func ListReferences() []Reference {
	n := global.MongoDB_ColNames
	return []Reference{
		{n.Playlists, "videos", n.Videos},
		{n.Users, "watchHistory", n.Videos},
	}
}

// orphanPipeline selects ids of documents whose ref.Field is set but resolves to nothing.
func orphanPipeline(ref Reference) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{ref.Field: bson.M{"$exists": true, "$ne": nil}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ref.Target,
			"localField":   ref.Field,
			"foreignField": "_id",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"_id": 1}}},
			"as":           "ref",
		}}},
		{{Key: "$match", Value: bson.M{"ref": bson.M{"$size": 0}}}},
		{{Key: "$project", Value: bson.M{"_id": 1}}},
	}
}

// danglingPipeline selects documents whose ref.Field array holds ids missing from ref.Target.
func danglingPipeline(ref Reference) mongo.Pipeline {
	field := "$" + ref.Field
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{ref.Field: bson.M{"$exists": true, "$ne": bson.A{}}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ref.Target,
			"localField":   ref.Field,
			"foreignField": "_id",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"_id": 1}}},
			"as":           "found",
		}}},
		{{Key: "$project", Value: bson.M{
			"missing": bson.M{"$setDifference": bson.A{field, "$found._id"}},
		}}},
		{{Key: "$match", Value: bson.M{"missing.0": bson.M{"$exists": true}}}},
	}
}

type idOnly struct {
	ID primitive.ObjectID `bson:"_id"`
}

type dangling struct {
	ID      primitive.ObjectID   `bson:"_id"`
	Missing []primitive.ObjectID `bson:"missing"`
}

// Report counts what a repair removed, or would remove on a dry run.
type Report struct {
	Deleted map[string]int64 `json:"deleted"`
	Pulled  map[string]int64 `json:"pulled"`
	Passes  int              `json:"passes"`
}

func (r Report) Total() int64 {
	var total int64
	for _, n := range r.Deleted {
		total += n
	}
	for _, n := range r.Pulled {
		total += n
	}
	return total
}

type Repairer struct {
	db     *mongo.Database
	dryRun bool
}

func NewRepairer(db *mongo.Database, dryRun bool) *Repairer {
	return &Repairer{db: db, dryRun: dryRun}
}

// Run sweeps orphans until a pass finds none, then pulls dangling list entries.
// A dry run makes a single pass since nothing is removed between passes.
func (r *Repairer) Run(ctx context.Context) (Report, error) {
	report := Report{Deleted: map[string]int64{}, Pulled: map[string]int64{}}

	for report.Passes < maxPasses {
		report.Passes++
		var removed int64
		for _, ref := range OrphanReferences() {
			n, err := r.sweep(ctx, ref)
			if err != nil {
				return report, err
			}
			report.Deleted[ref.String()] += n
			removed += n
		}
		if removed == 0 || r.dryRun {
			break
		}
	}

	for _, ref := range ListReferences() {
		n, err := r.pull(ctx, ref)
		if err != nil {
			return report, err
		}
		report.Pulled[ref.String()] = n
	}
	return report, nil
}

func (r *Repairer) sweep(ctx context.Context, ref Reference) (int64, error) {
	coll := r.db.Collection(ref.Collection)
	orphans, err := basesvc.AggregateAll[idOnly](ctx, coll, orphanPipeline(ref))
	if err != nil {
		return 0, fmt.Errorf("find orphans %s: %w", ref, err)
	}
	if len(orphans) == 0 || r.dryRun {
		return int64(len(orphans)), nil
	}

	ids := make([]primitive.ObjectID, len(orphans))
	for i, o := range orphans {
		ids[i] = o.ID
	}
	res, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete orphans %s: %w", ref, err)
	}
	logger.WithCollection(ref.Collection).WithFields(map[string]interface{}{
		"field":   ref.Field,
		"deleted": res.DeletedCount,
	}).Info("orphans removed")
	return res.DeletedCount, nil
}

func (r *Repairer) pull(ctx context.Context, ref Reference) (int64, error) {
	coll := r.db.Collection(ref.Collection)
	docs, err := basesvc.AggregateAll[dangling](ctx, coll, danglingPipeline(ref))
	if err != nil {
		return 0, fmt.Errorf("find dangling %s: %w", ref, err)
	}

	var pulled int64
	for _, d := range docs {
		pulled += int64(len(d.Missing))
		if r.dryRun {
			continue
		}
		_, err := coll.UpdateOne(ctx,
			bson.M{"_id": d.ID},
			bson.M{"$pull": bson.M{ref.Field: bson.M{"$in": d.Missing}}},
		)
		if err != nil {
			return pulled, fmt.Errorf("pull dangling %s from %s: %w", ref, d.ID.Hex(), err)
		}
	}
	return pulled, nil
}
