package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const filteredKey = "_filtered"

// AsyncHook buffers entries and writes them to every writer from one goroutine.
// When the buffer is full the entry is dropped instead of blocking the caller.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

// NewAsyncHook creates a hook for a single writer.
func NewAsyncHook(writer io.Writer, bufferSize int) *AsyncHook {
	return NewAsyncHookWithWriters([]io.Writer{writer}, bufferSize)
}

// NewAsyncHookWithWriters creates a hook fanning out to several writers.
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire never blocks. After Close it writes synchronously.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	if isFiltered(entry) {
		return nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		h.write(entry)
		return nil
	}

	// the entry is formatted later on another goroutine
	select {
	case h.entries <- clone(entry):
	default:
		h.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			// a broken writer must not take the server down
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			h.write(entry)
		}()
	}
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}

	for _, writer := range h.writers {
		_, _ = writer.Write(data)
	}
}

// Dropped reports how many entries were discarded because the buffer was full.
func (h *AsyncHook) Dropped() uint64 {
	return h.dropped.Load()
}

// Close drains the buffer and waits for the writer goroutine.
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

func isFiltered(entry *logrus.Entry) bool {
	filtered, ok := entry.Data[filteredKey].(bool)
	if ok {
		delete(entry.Data, filteredKey)
	}
	return ok && filtered
}

// clone copies what the formatter needs; Entry.Dup drops level, message and caller.
func clone(entry *logrus.Entry) *logrus.Entry {
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message
	dup.Caller = entry.Caller
	return dup
}
