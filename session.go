package main

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"livecap/log"
	"livecap/transcriber"
)

// SessionState is owned by the Controller. The loops only ever read it.
type SessionState int32

const (
	StateIdle SessionState = iota
	StateRecording
	StatePaused
	StateStopping
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	}
	return "unknown"
}

var (
	ErrNoDevice = errors.New("no working capture device")
	ErrBusy     = errors.New("session already active")
)

// ChunkRecorder is the blocking capture contract the loop runs against:
// one call, one full chunk.
type ChunkRecorder interface {
	Record(frames int) ([]int16, error)
	DeviceName() string
}

// Controller owns the session state machine and the lifecycle of the
// capture and transcription loops. The device is resolved once, before
// the Controller exists; a mid-session failure stops the session and a
// restart reuses the same device (no re-probe).
type Controller struct {
	recorder ChunkRecorder // nil when probing found no device
	trans    transcriber.Transcriber
	sink     EventSink
	queue    *chunkQueue

	// Tunables, preset from config; tests shrink them.
	chunkFrames int
	channels    int
	rate        int
	threshold   float64
	popTimeout  time.Duration
	pausePoll   time.Duration

	state       atomic.Int32
	resultCount atomic.Int64

	mu sync.Mutex // guards transitions and wg
	wg *sync.WaitGroup
}

func NewController(rec ChunkRecorder, trans transcriber.Transcriber, sink EventSink) *Controller {
	return &Controller{
		recorder:    rec,
		trans:       trans,
		sink:        sink,
		queue:       newChunkQueue(),
		chunkFrames: chunkFrames,
		channels:    captureChannels,
		rate:        captureRate,
		threshold:   volumeThreshold,
		popTimeout:  queueTimeout,
		pausePoll:   pausePoll,
	}
}

func (c *Controller) State() SessionState {
	return SessionState(c.state.Load())
}

// HasDevice reports whether a capture device was resolved; without one
// the start intent stays disabled.
func (c *Controller) HasDevice() bool {
	return c.recorder != nil
}

// active reports whether the loops should keep running. Paused still
// counts as in-session.
func (c *Controller) active() bool {
	s := c.State()
	return s == StateRecording || s == StatePaused
}

// Start moves Idle → Recording: stale chunks from a prior session are
// cleared, then both loops launch. Requires a resolved device.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() != StateIdle {
		return ErrBusy
	}
	if c.recorder == nil {
		log.Error("cannot start: no working microphone")
		return ErrNoDevice
	}

	c.queue.Clear()
	c.resultCount.Store(0)
	c.state.Store(int32(StateRecording))

	log.SessionStart(c.trans.Name(), c.rate, c.channels)
	log.Infof("recording started on %s at %d Hz", c.recorder.DeviceName(), c.rate)

	wg := &sync.WaitGroup{}
	c.wg = wg
	wg.Add(2)
	go c.captureLoop(wg)
	go c.transcribeLoop(wg)

	c.sink.SessionStarted(c.recorder.DeviceName())
	return nil
}

// TogglePause flips Recording ↔ Paused; a no-op in any other state.
func (c *Controller) TogglePause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.State() {
	case StateRecording:
		c.state.Store(int32(StatePaused))
		log.Info("session paused")
		c.sink.Paused(true)
	case StatePaused:
		c.state.Store(int32(StateRecording))
		log.Info("session resumed")
		c.sink.Paused(false)
	}
}

// Stop begins the wind-down and returns immediately: capture exits after
// its current chunk, transcription drains the queue, and a watcher lands
// the state in Idle once both are done. Stop while Idle or Stopping is a
// no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.active() {
		c.mu.Unlock()
		return
	}
	c.state.Store(int32(StateStopping))
	wg := c.wg
	c.mu.Unlock()

	log.Info("session stopping")
	go func() {
		wg.Wait()
		c.mu.Lock()
		if c.State() == StateStopping {
			c.state.Store(int32(StateIdle))
		}
		c.mu.Unlock()
		log.SessionEnd(int(c.resultCount.Load()))
		c.sink.SessionStopped()
	}()
}

// forceStop is the same transition as Stop, initiated from inside the
// pipeline after a fatal capture error.
func (c *Controller) forceStop() {
	c.Stop()
}
