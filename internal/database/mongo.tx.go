package database

import (
	"context"
	"fmt"

	"github.com/Kapilrajreddy/youtube-api/internal/api/events"

	"go.mongodb.org/mongo-driver/mongo"
)

// txBody runs one attempt of a transaction on a context bound to the session.
type txBody func(ctx context.Context) error

// txRunner runs body until it commits or fails for good; session.WithTransaction
// may call body more than once.
type txRunner func(ctx context.Context, body txBody) error

// WithTransaction runs fn inside a multi-document transaction when useTx is set.
// Without a transaction fn runs directly on ctx, so every step inside it must be idempotent.
// Data change events emitted by fn are dispatched only after the commit, on ctx.
func WithTransaction(ctx context.Context, client *mongo.Client, useTx bool, fn func(ctx context.Context) error) error {
	if !useTx || client == nil {
		return fn(ctx)
	}

	session, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	return runDeferred(ctx, func(ctx context.Context, body txBody) error {
		_, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, body(sc)
		})
		return err
	}, fn)
}

// runDeferred gives each attempt a fresh event batch and flushes the last one
// on the caller's context once run reports success.
func runDeferred(ctx context.Context, run txRunner, fn func(ctx context.Context) error) error {
	var batch *events.Batch
	err := run(ctx, func(txCtx context.Context) error {
		var deferred context.Context
		deferred, batch = events.Defer(txCtx)
		return fn(deferred)
	})
	if err != nil {
		return err
	}
	batch.Flush(ctx)
	return nil
}
