package basesvc

import (
	"context"
	"math"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100
)

// ClampPage normalizes paging input: page < 1 becomes 1, limit < 1 becomes 10,
// limit above 100 becomes 100. page is capped so (page-1)*limit fits in an int64;
// such a page is past any real collection and comes back empty.
func ClampPage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt64 / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// pageSkip is the number of documents before page, saturating instead of overflowing.
func pageSkip(page, limit int64) int64 {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return (page - 1) * limit
}

func MatchStage(filter bson.M) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

// OwnerLookup joins the user referenced by localField and stores its public
// projection under as. A dangling reference leaves as unset.
func OwnerLookup(localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Users,
			"localField":   localField,
			"foreignField": "_id",
			"as":           as,
			"pipeline": bson.A{
				bson.M{"$project": bson.M{"username": 1, "fullName": 1, "avatar.url": 1}},
			},
		}}},
		{{Key: "$addFields", Value: bson.M{as: bson.M{"$first": "$" + as}}}},
	}
}

// LikesLookup adds likesCount and isLiked for documents whose likes reference
// them through targetField. A zero actor is anonymous and never likes anything.
func LikesLookup(targetField string, actor primitive.ObjectID) []bson.D {
	var isLiked interface{} = false
	if !actor.IsZero() {
		isLiked = bson.M{"$in": bson.A{actor, "$likes.likedBy"}}
	}
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Likes,
			"localField":   "_id",
			"foreignField": targetField,
			"as":           "likes",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"likedBy": 1}}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"likesCount": bson.M{"$size": "$likes"},
			"isLiked":    isLiked,
		}}},
		{{Key: "$project", Value: bson.M{"likes": 0}}},
	}
}

// CountLookup stores under as the number of documents in from whose foreignField equals localField.
func CountLookup(from, localField, foreignField, as string) []bson.D {
	tmp := "_" + as
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   localField,
			"foreignField": foreignField,
			"as":           tmp,
			"pipeline":     bson.A{bson.M{"$project": bson.M{"_id": 1}}},
		}}},
		{{Key: "$addFields", Value: bson.M{as: bson.M{"$size": "$" + tmp}}}},
		{{Key: "$project", Value: bson.M{tmp: 0}}},
	}
}

// SortStage sorts by keys in the given order and always ends with _id ascending,
// so documents with equal keys keep insertion order.
func SortStage(keys ...bson.E) bson.D {
	sort := bson.D{}
	for _, k := range keys {
		if k.Key == "_id" {
			continue
		}
		sort = append(sort, k)
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})
	return bson.D{{Key: "$sort", Value: sort}}
}

// NewestFirst is the default ordering of every listing.
func NewestFirst() bson.D {
	return SortStage(bson.E{Key: "createdAt", Value: -1})
}

// FacetPage splits the stream into one page of items and the total count.
// decorate runs on the page's items only, after skip and limit.
func FacetPage(page, limit int64, decorate ...bson.D) bson.D {
	items := bson.A{
		bson.M{"$skip": pageSkip(page, limit)},
		bson.M{"$limit": limit},
	}
	for _, stage := range decorate {
		items = append(items, stage)
	}
	return bson.D{{Key: "$facet", Value: bson.M{
		"items": items,
		"total": bson.A{bson.M{"$count": "count"}},
	}}}
}

type facetResult[T any] struct {
	Items []T `bson:"items"`
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
}

// Paginate appends a facet to pipeline and returns one page. pipeline filters
// and sorts; decorate (lookups, projections) runs only on the selected items and
// must not change their order. Page and limit are clamped first. No matches
// yields an empty page, never an error.
func Paginate[T any](ctx context.Context, coll *mongo.Collection, pipeline, decorate []bson.D, page, limit int64) (*basemodels.PaginateResult[T], error) {
	page, limit = ClampPage(page, limit)

	stages := make(mongo.Pipeline, 0, len(pipeline)+1)
	stages = append(stages, pipeline...)
	stages = append(stages, FacetPage(page, limit, decorate...))

	cursor, err := coll.Aggregate(ctx, stages)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var facets []facetResult[T]
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	var (
		items []T
		total int64
	)
	if len(facets) > 0 {
		items = facets[0].Items
		if len(facets[0].Total) > 0 {
			total = facets[0].Total[0].Count
		}
	}
	return basemodels.NewPaginateResult(items, total, page, limit), nil
}

// Stages flattens stage groups into one pipeline.
func Stages(groups ...[]bson.D) []bson.D {
	var out []bson.D
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
