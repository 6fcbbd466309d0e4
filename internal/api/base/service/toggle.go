package basesvc

import (
	"context"

	"github.com/Kapilrajreddy/youtube-api/internal/api/events"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Toggle flips the existence of the document identified by pair. It deletes
// first: a removed document means the relation is now inactive. Otherwise doc
// is inserted, and a duplicate-key error means a concurrent toggle already
// created it, which also leaves the relation active. The unique index on pair
// is the only arbiter.
//
// doc must carry every field of pair; createdAt/updatedAt are stamped here.
func Toggle(ctx context.Context, coll *mongo.Collection, pair bson.M, doc interface{}) (active bool, err error) {
	res, err := coll.DeleteOne(ctx, pair)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	if res.DeletedCount > 0 {
		events.EmitDataChanged(ctx, events.DataChangeEvent{
			CollectionName: coll.Name(),
			Operation:      events.OpToggle,
		})
		return false, nil
	}

	m, err := utility.ToMap(doc)
	if err != nil {
		return false, common.ErrInvalidFormat
	}
	now := utility.CurrentTimeInMilli()
	m["createdAt"] = now
	m["updatedAt"] = now

	if _, err := coll.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return true, nil
		}
		return false, common.ConvertMongoError(err)
	}
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: coll.Name(),
		Operation:      events.OpToggle,
		Document:       doc,
	})
	return true, nil
}
