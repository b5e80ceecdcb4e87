package main

import (
	"sync"
	"time"
)

// chunk is one fixed-duration unit of captured audio, handled atomically
// through the pipeline. Immutable once pushed; owned by the queue until
// popped.
type chunk struct {
	samples  []int16 // interleaved
	channels int
	rate     int
	start    time.Time // taken before capture began
}

// chunkQueue is a FIFO with non-blocking push and timed blocking pop.
// Deliberately unbounded: when transcription falls behind capture the
// backlog grows. Known limitation, preserved from the original design.
type chunkQueue struct {
	mu    sync.Mutex
	items []chunk
	wake  chan struct{}
}

func newChunkQueue() *chunkQueue {
	return &chunkQueue{wake: make(chan struct{}, 1)}
}

func (q *chunkQueue) Push(c chunk) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pop waits up to timeout for an item; ok is false on timeout.
func (q *chunkQueue) Pop(timeout time.Duration) (chunk, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			c := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return c, true
		}
		q.mu.Unlock()

		select {
		case <-q.wake: // recheck, the token may be stale
		case <-timer.C:
			return chunk{}, false
		}
	}
}

func (q *chunkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *chunkQueue) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
