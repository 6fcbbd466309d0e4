// Package events is the in-process fan-out for data changes.
// Services emit after every successful mutation; subscribers (audit, the AMQP
// publisher) register through OnDataChanged at startup. Mutations running in a
// transaction emit into a Batch carried by the context, which is dispatched
// once the transaction commits.
package events

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
	OpToggle = "toggle"
)

// DataChangeEvent describes one committed change.
// Document is the entity after the change, nil on delete.
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	DocumentID     primitive.ObjectID
	Document       interface{}
	At             time.Time
}

type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
	inflight   sync.WaitGroup
)

// OnDataChanged registers h. Call during startup.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// Reset drops every handler.
func Reset() {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = nil
}

type batchKey struct{}

// Batch holds the events of one transaction attempt.
type Batch struct {
	mu     sync.Mutex
	events []DataChangeEvent
}

// Defer returns a context whose emits are collected into a new Batch instead
// of being dispatched. Call it once per transaction attempt so a retried
// attempt starts empty.
func Defer(ctx context.Context) (context.Context, *Batch) {
	b := &Batch{}
	return context.WithValue(ctx, batchKey{}, b), b
}

func (b *Batch) add(e DataChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

// Len is the number of collected events.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Flush emits the collected events on ctx and empties the batch. Pass the
// context the transaction was started from, not the session context: when ctx
// carries an outer Batch the events move there.
func (b *Batch) Flush(ctx context.Context) {
	if b == nil {
		return
	}
	b.mu.Lock()
	pending := b.events
	b.events = nil
	b.mu.Unlock()
	for _, e := range pending {
		EmitDataChanged(ctx, e)
	}
}

// EmitDataChanged runs every handler in its own goroutine, or adds e to the
// Batch carried by ctx. Handlers get a context detached from the request's
// cancellation. A panicking handler is logged.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	if e.DocumentID.IsZero() {
		e.DocumentID = DocumentID(e.Document)
	}
	if b, ok := ctx.Value(batchKey{}).(*Batch); ok && b != nil {
		b.add(e)
		return
	}

	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, h := range list {
		inflight.Add(1)
		go func(fn DataChangeHandler) {
			defer inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.WithCollection(e.CollectionName).Errorf("data change handler panic: %v", r)
				}
			}()
			fn(detached, e)
		}(h)
	}
}

// Wait blocks until handlers started so far have returned.
func Wait() {
	inflight.Wait()
}

// DocumentID reads the ID field of a struct (or pointer to one) holding an ObjectID.
func DocumentID(doc interface{}) primitive.ObjectID {
	if doc == nil {
		return primitive.NilObjectID
	}
	val := reflect.ValueOf(doc)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return primitive.NilObjectID
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return primitive.NilObjectID
	}
	f := val.FieldByName("ID")
	if !f.IsValid() || !f.CanInterface() {
		return primitive.NilObjectID
	}
	if id, ok := f.Interface().(primitive.ObjectID); ok {
		return id
	}
	return primitive.NilObjectID
}
