// Package basesvc holds the generic MongoDB service embedded by every domain
// service, plus the shared pipeline, toggle and cascade primitives.
package basesvc

import (
	"context"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	"github.com/Kapilrajreddy/youtube-api/internal/api/events"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateData is a partial update. Empty operators are omitted from the wire document.
type UpdateData struct {
	Set      map[string]interface{} `bson:"$set,omitempty"`
	Unset    map[string]interface{} `bson:"$unset,omitempty"`
	Inc      map[string]interface{} `bson:"$inc,omitempty"`
	AddToSet map[string]interface{} `bson:"$addToSet,omitempty"`
	Pull     map[string]interface{} `bson:"$pull,omitempty"`
}

// ToUpdateData accepts an *UpdateData, an UpdateData or any bson-tagged value; the
// latter becomes a $set of its non-omitted fields.
func ToUpdateData(data interface{}) (*UpdateData, error) {
	switch v := data.(type) {
	case *UpdateData:
		if v == nil {
			return nil, common.ErrInvalidFormat
		}
		return v, nil
	case UpdateData:
		return &v, nil
	case nil:
		return nil, common.ErrInvalidFormat
	}

	m, err := utility.ToMap(data)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	delete(m, "_id")
	return &UpdateData{Set: m}, nil
}

func (u *UpdateData) empty() bool {
	return len(u.Set) == 0 && len(u.Unset) == 0 && len(u.Inc) == 0 && len(u.AddToSet) == 0 && len(u.Pull) == 0
}

// BaseServiceMongoImpl implements the CRUD shared by every collection.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// InsertOne stamps createdAt/updatedAt, inserts and returns the stored document.
// Empty strings are dropped so sparse unique indexes ignore them.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	for key, value := range dataMap {
		if str, ok := value.(string); ok && str == "" {
			delete(dataMap, key)
		}
	}

	now := utility.CurrentTimeInMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpInsert,
		Document:       created,
	})
	return created, nil
}

func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	if opts == nil {
		opts = options.FindOne()
	}
	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById returns ErrNotFound when no document has the id.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find never returns a nil slice.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// UpdateOne applies update to the first match and returns the document after the change.
// A filter that matches nothing is ErrNotFound; an update that changes nothing is not.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, data interface{}) (T, error) {
	var zero T

	update, err := ToUpdateData(data)
	if err != nil {
		return zero, err
	}
	if update.empty() {
		return s.FindOne(ctx, filter, nil)
	}
	if update.Set == nil {
		update.Set = make(map[string]interface{})
	}
	update.Set["updatedAt"] = utility.CurrentTimeInMilli()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(false)
	var updated T
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return zero, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpdate,
		Document:       updated,
	})
	return updated, nil
}

func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, data)
}

// DeleteById removes the document and returns it as it was.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) (T, error) {
	var deleted T
	if err := s.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		return deleted, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpDelete,
		DocumentID:     id,
		Document:       deleted,
	})
	return deleted, nil
}

func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// AggregateAll decodes every result of pipeline into R.
func AggregateAll[R any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]R, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]R, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// AggregateOne returns the first result of pipeline, ErrNotFound when there is none.
func AggregateOne[R any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) (R, error) {
	var zero R
	p := append(mongo.Pipeline{}, pipeline...)
	results, err := AggregateAll[R](ctx, coll, append(p, bson.D{{Key: "$limit", Value: 1}}))
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, common.ErrNotFound
	}
	return results[0], nil
}

// EnsureExists returns a NotFoundError naming what when collection has no document with id.
func EnsureExists(ctx context.Context, collection string, id primitive.ObjectID, what string) error {
	coll, err := global.RegistryCollections.MustGet(collection)
	if err != nil {
		return common.NewInternalError("", err)
	}
	count, err := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if count == 0 {
		return common.NewNotFoundError(what + " not found")
	}
	return nil
}

// EnsureTarget checks that the video, tweet or comment named by target exists.
func EnsureTarget(ctx context.Context, target basemodels.Target) error {
	names := global.MongoDB_ColNames
	switch target.Kind {
	case basemodels.TargetVideo:
		return EnsureExists(ctx, names.Videos, target.ID, "video")
	case basemodels.TargetTweet:
		return EnsureExists(ctx, names.Tweets, target.ID, "tweet")
	case basemodels.TargetComment:
		return EnsureExists(ctx, names.Comments, target.ID, "comment")
	}
	return common.NewValidationError("invalid attachment target")
}
