package commentssvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecorateKeepsOrderStable(t *testing.T) {
	stages := decorate(primitive.NilObjectID)
	for _, stage := range stages {
		_, isSort := stage.Map()["$sort"]
		assert.False(t, isSort, "decorate must not reorder the page")
	}

	var fields []string
	for _, stage := range stages {
		if add, ok := stage.Map()["$addFields"].(bson.M); ok {
			for k := range add {
				fields = append(fields, k)
			}
		}
	}
	assert.Subset(t, fields, []string{"owner", "likesCount", "isLiked", "repliesCount"})
}
