package main

import (
	"sync"
	"testing"
	"time"

	"livecap/transcriber"
)

// scriptedRecorder plays back pre-baked chunks, then silence. A call
// index at or past errAt fails instead.
type scriptedRecorder struct {
	mu       sync.Mutex
	chunks   [][]int16
	channels int
	errAt    int // -1: never fail
	err      error
	delay    time.Duration
	calls    int
}

func newScriptedRecorder(channels int, chunks ...[]int16) *scriptedRecorder {
	return &scriptedRecorder{
		chunks:   chunks,
		channels: channels,
		errAt:    -1,
		delay:    time.Millisecond,
	}
}

func (r *scriptedRecorder) DeviceName() string { return "scripted" }

func (r *scriptedRecorder) Record(frames int) ([]int16, error) {
	r.mu.Lock()
	i := r.calls
	r.calls++
	r.mu.Unlock()

	time.Sleep(r.delay)
	if r.errAt >= 0 && i >= r.errAt {
		return nil, r.err
	}
	if i < len(r.chunks) {
		return r.chunks[i], nil
	}
	return make([]int16, frames*r.channels), nil // silence
}

// constChunk builds an interleaved chunk whose every sample is value,
// so its RMS is |value|.
func constChunk(frames, channels int, value int16) []int16 {
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = value
	}
	return samples
}

type resultEvent struct {
	text    string
	latency time.Duration
}

// recordedSink collects every pipeline event for assertions.
type recordedSink struct {
	mu          sync.Mutex
	results     []resultEvent
	started     int
	stopped     int
	pauses      []bool
	captureErrs []error
	stoppedCh   chan struct{}
}

func newRecordedSink() *recordedSink {
	return &recordedSink{stoppedCh: make(chan struct{}, 8)}
}

func (s *recordedSink) SessionStarted(string) {
	s.mu.Lock()
	s.started++
	s.mu.Unlock()
}

func (s *recordedSink) SessionStopped() {
	s.mu.Lock()
	s.stopped++
	s.mu.Unlock()
	s.stoppedCh <- struct{}{}
}

func (s *recordedSink) Paused(paused bool) {
	s.mu.Lock()
	s.pauses = append(s.pauses, paused)
	s.mu.Unlock()
}

func (s *recordedSink) Result(text string, latency time.Duration) {
	s.mu.Lock()
	s.results = append(s.results, resultEvent{text: text, latency: latency})
	s.mu.Unlock()
}

func (s *recordedSink) CaptureError(err error) {
	s.mu.Lock()
	s.captureErrs = append(s.captureErrs, err)
	s.mu.Unlock()
}

func (s *recordedSink) Results() []resultEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]resultEvent(nil), s.results...)
}

func (s *recordedSink) StoppedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *recordedSink) CaptureErrors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.captureErrs...)
}

func (s *recordedSink) waitStopped(t *testing.T) {
	t.Helper()
	select {
	case <-s.stoppedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for SessionStopped")
	}
}

// newTestController shrinks every tunable so sessions run in
// milliseconds.
func newTestController(rec ChunkRecorder, tr transcriber.Transcriber, sink EventSink) *Controller {
	c := NewController(rec, tr, sink)
	c.chunkFrames = 80
	c.channels = 2
	c.rate = 48000
	c.threshold = 10
	c.popTimeout = 30 * time.Millisecond
	c.pausePoll = 2 * time.Millisecond
	return c
}

func waitState(t *testing.T, c *Controller, want SessionState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("controller state = %v, want %v", c.State(), want)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
