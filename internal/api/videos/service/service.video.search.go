package videossvc

import (
	"context"
	"strings"

	basemodels "github.com/Kapilrajreddy/youtube-api/internal/api/base/models"
	basesvc "github.com/Kapilrajreddy/youtube-api/internal/api/base/service"
	videosdto "github.com/Kapilrajreddy/youtube-api/internal/api/videos/dto"
	videosmodels "github.com/Kapilrajreddy/youtube-api/internal/api/videos/models"
	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var sortableFields = map[string]bool{
	"createdAt": true,
	"views":     true,
	"duration":  true,
	"title":     true,
}

// parseSort checks the mandatory search parameters and returns the sort key and direction.
func parseSort(q videosdto.SearchQuery) (string, int, error) {
	if strings.TrimSpace(q.Query) == "" || q.SortBy == "" || q.SortType == "" {
		return "", 0, common.NewValidationError(common.MsgRequiredFields)
	}
	if !sortableFields[q.SortBy] {
		return "", 0, common.NewValidationError("invalid sortBy", "sortBy must be one of [createdAt views duration title]")
	}
	switch strings.ToLower(q.SortType) {
	case "asc":
		return q.SortBy, 1, nil
	case "desc":
		return q.SortBy, -1, nil
	}
	return "", 0, common.NewValidationError("invalid sortType", "sortType must be one of [asc desc]")
}

// searchPipeline matches the text query under filter and orders by relevance,
// then by the requested key, then by _id. $text matches stemmed words, not typos.
func searchPipeline(query string, filter bson.M, sortBy string, dir int) []bson.D {
	match := bson.M{"$text": bson.M{"$search": query}}
	for k, v := range filter {
		match[k] = v
	}
	return []bson.D{
		basesvc.MatchStage(match),
		basesvc.SortStage(
			bson.E{Key: "score", Value: bson.M{"$meta": "textScore"}},
			bson.E{Key: sortBy, Value: dir},
		),
	}
}

func listDecorate(actor primitive.ObjectID) []bson.D {
	return basesvc.Stages(
		basesvc.OwnerLookup("owner", "owner"),
		basesvc.LikesLookup("video", actor),
		basesvc.CountLookup(global.MongoDB_ColNames.Comments, "_id", "video", "commentsCount"),
	)
}

// Search runs a full-text search over published videos, or over one channel
// when q.Username is set. Only the channel owner may list unpublished videos.
func (s *VideoService) Search(ctx context.Context, q videosdto.SearchQuery, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[videosmodels.VideoListItem], error) {
	sortBy, dir, err := parseSort(q)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"isPublished": true}
	if q.Username != "" {
		owner, err := s.users.FindByUsername(ctx, q.Username)
		if err != nil {
			return nil, err
		}
		filter["owner"] = owner.ID
		if !utility.ParseBool(q.IsPublished, true) && owner.ID == actor {
			filter["isPublished"] = false
		}
	}

	pipeline := searchPipeline(strings.TrimSpace(q.Query), filter, sortBy, dir)
	return basesvc.Paginate[videosmodels.VideoListItem](ctx, s.Collection(), pipeline, listDecorate(actor), page, limit)
}

// ListByChannel pages a channel's videos newest first. The owner also sees unpublished ones.
func (s *VideoService) ListByChannel(ctx context.Context, userID, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[videosmodels.VideoListItem], error) {
	if err := basesvc.EnsureExists(ctx, global.MongoDB_ColNames.Users, userID, "user"); err != nil {
		return nil, err
	}
	filter := bson.M{"owner": userID}
	if userID != actor {
		filter["isPublished"] = true
	}
	pipeline := []bson.D{basesvc.MatchStage(filter), basesvc.NewestFirst()}
	return basesvc.Paginate[videosmodels.VideoListItem](ctx, s.Collection(), pipeline, listDecorate(actor), page, limit)
}

// WatchHistory pages the videos actor has watched, latest first. Videos
// deleted or unpublished since are skipped.
func (s *VideoService) WatchHistory(ctx context.Context, actor primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[videosmodels.VideoListItem], error) {
	pipeline := []bson.D{
		basesvc.MatchStage(bson.M{"_id": actor}),
		{{Key: "$project", Value: bson.M{"watchHistory": 1}}},
		{{Key: "$unwind", Value: bson.M{"path": "$watchHistory", "includeArrayIndex": "position"}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Videos,
			"localField":   "watchHistory",
			"foreignField": "_id",
			"as":           "video",
		}}},
		{{Key: "$unwind", Value: "$video"}},
		basesvc.MatchStage(bson.M{"$or": bson.A{
			bson.M{"video.isPublished": true},
			bson.M{"video.owner": actor},
		}}),
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": bson.M{
			"$mergeObjects": bson.A{"$video", bson.M{"position": "$position"}},
		}}}},
		basesvc.SortStage(bson.E{Key: "position", Value: -1}),
	}
	return basesvc.Paginate[videosmodels.VideoListItem](ctx, s.users.Collection(), pipeline, listDecorate(actor), page, limit)
}
