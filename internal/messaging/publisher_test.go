package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/api/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewMessage(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.UnixMilli(1700000000123)
	e := events.DataChangeEvent{CollectionName: "videos", Operation: events.OpInsert, DocumentID: id, At: at}

	assert.Equal(t, "videos.insert", RoutingKey(e))

	raw, err := json.Marshal(NewMessage(e))
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, id.Hex(), m["documentId"])
	assert.Equal(t, float64(1700000000123), m["at"])
	assert.NotContains(t, m, "document")
}

func TestNewMessageWithoutID(t *testing.T) {
	m := NewMessage(events.DataChangeEvent{CollectionName: "likes", Operation: events.OpToggle, At: time.Now()})
	assert.Empty(t, m.DocumentID)
}
