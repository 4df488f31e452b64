package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the number of buffered bytes that forces a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is how long written bytes may wait before they are flushed.
	DefaultTimeLimit = 100 * time.Millisecond
)

// ErrBatcherClosed is returned by Write after Close.
var ErrBatcherClosed = errors.New("batch processor is closed")

// BatchProcessor groups small writes into larger chunks for onFlush.
// Data is handed over when sizeLimit bytes are pending or when the oldest
// pending byte has waited timeLimit. It is safe for concurrent use.
type BatchProcessor struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu      sync.Mutex
	pending bytes.Buffer
	timer   *time.Timer
	closed  bool
}

// NewBatchProcessor returns a BatchProcessor. Zero limits pick the defaults.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *BatchProcessor {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
	}
}

// Write buffers p.
func (bp *BatchProcessor) Write(p []byte) (int, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, ErrBatcherClosed
	}

	n, _ := bp.pending.Write(p)
	switch {
	case bp.pending.Len() >= bp.sizeLimit:
		bp.drainLocked()
	case bp.timer == nil && bp.pending.Len() > 0:
		bp.timer = time.AfterFunc(bp.timeLimit, bp.Flush)
	}
	return n, nil
}

// Flush hands any pending data to onFlush.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if !bp.closed {
		bp.drainLocked()
	}
}

// Close flushes what is pending and rejects further writes. It is idempotent.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.drainLocked()
	bp.closed = true
	return nil
}

// drainLocked must be called with mu held.
func (bp *BatchProcessor) drainLocked() {
	if bp.timer != nil {
		bp.timer.Stop()
		bp.timer = nil
	}
	if bp.pending.Len() == 0 {
		return
	}
	data := bytes.Clone(bp.pending.Bytes())
	bp.pending.Reset()

	if bp.onFlush != nil {
		bp.onFlush(data)
	}
}
