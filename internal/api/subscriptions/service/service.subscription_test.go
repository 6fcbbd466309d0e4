package subscriptionssvc

import (
	"context"
	"testing"

	"github.com/Kapilrajreddy/youtube-api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleRejectsSelfSubscription(t *testing.T) {
	s := &SubscriptionService{}
	me := primitive.NewObjectID()
	_, err := s.Toggle(context.Background(), me, me)
	require.Error(t, err)
	assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))
}

func TestSubscriberDecorateFollowBack(t *testing.T) {
	channel := primitive.NewObjectID()
	stages := subscriberDecorate(channel)
	lookup := stages[0].Map()["$lookup"].(bson.M)
	project := lookup["pipeline"].(bson.A)[1].(bson.M)["$project"].(bson.M)
	assert.Equal(t, bson.M{"$in": bson.A{channel, "$followers.subscriber"}}, project["subscribedToSubscriber"])
}

func TestChannelDecorateLatestVideoPublishedOnly(t *testing.T) {
	lookup := channelDecorate()[0].Map()["$lookup"].(bson.M)
	inner := lookup["pipeline"].(bson.A)[0].(bson.M)["$lookup"].(bson.M)
	stages := inner["pipeline"].(bson.A)
	assert.Equal(t, bson.M{"$match": bson.M{"isPublished": true}}, stages[0])
	assert.Equal(t, bson.M{"$limit": 1}, stages[2])
}
