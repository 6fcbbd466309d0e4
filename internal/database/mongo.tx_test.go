package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Kapilrajreddy/youtube-api/internal/api/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recorder struct {
	mu  sync.Mutex
	got []events.DataChangeEvent
}

func (r *recorder) handle(_ context.Context, e events.DataChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
}

func (r *recorder) seen() []events.DataChangeEvent {
	events.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.DataChangeEvent(nil), r.got...)
}

func listen(t *testing.T) *recorder {
	t.Helper()
	events.Reset()
	t.Cleanup(events.Reset)
	r := &recorder{}
	events.OnDataChanged(r.handle)
	return r
}

func emitDelete(ctx context.Context, id primitive.ObjectID) {
	events.EmitDataChanged(ctx, events.DataChangeEvent{CollectionName: "videos", Operation: events.OpDelete, DocumentID: id})
}

// oneShot commits whatever body returns.
func oneShot(ctx context.Context, body txBody) error {
	return body(ctx)
}

func TestRunDeferredDispatchesAfterCommit(t *testing.T) {
	rec := listen(t)
	id := primitive.NewObjectID()

	err := runDeferred(context.Background(), oneShot, func(ctx context.Context) error {
		emitDelete(ctx, id)
		assert.Empty(t, rec.seen(), "event dispatched before commit")
		return nil
	})
	require.NoError(t, err)

	got := rec.seen()
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].DocumentID)
}

func TestRunDeferredDropsAbortedEvents(t *testing.T) {
	rec := listen(t)
	stepFailed := errors.New("cascade step failed")

	err := runDeferred(context.Background(), oneShot, func(ctx context.Context) error {
		emitDelete(ctx, primitive.NewObjectID())
		return stepFailed
	})
	assert.ErrorIs(t, err, stepFailed)
	assert.Empty(t, rec.seen())
}

func TestRunDeferredKeepsOnlyCommittedAttempt(t *testing.T) {
	rec := listen(t)
	first, second := primitive.NewObjectID(), primitive.NewObjectID()

	attempt := 0
	retrying := func(ctx context.Context, body txBody) error {
		if err := body(ctx); err == nil {
			return errors.New("first attempt should fail")
		}
		return body(ctx)
	}
	err := runDeferred(context.Background(), retrying, func(ctx context.Context) error {
		attempt++
		if attempt == 1 {
			emitDelete(ctx, first)
			return errors.New("transient transaction error")
		}
		emitDelete(ctx, second)
		return nil
	})
	require.NoError(t, err)

	got := rec.seen()
	require.Len(t, got, 1)
	assert.Equal(t, second, got[0].DocumentID)
}

func TestRunDeferredFlushesIntoOuterBatch(t *testing.T) {
	rec := listen(t)
	outer, batch := events.Defer(context.Background())

	err := runDeferred(outer, oneShot, func(ctx context.Context) error {
		emitDelete(ctx, primitive.NewObjectID())
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, rec.seen())
	assert.Equal(t, 1, batch.Len())

	batch.Flush(context.Background())
	assert.Len(t, rec.seen(), 1)
}

func TestWithTransactionDisabledEmitsImmediately(t *testing.T) {
	rec := listen(t)

	err := WithTransaction(context.Background(), nil, true, func(ctx context.Context) error {
		emitDelete(ctx, primitive.NewObjectID())
		assert.Len(t, rec.seen(), 1)
		return nil
	})
	require.NoError(t, err)
}
