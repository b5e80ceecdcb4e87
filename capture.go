package main

import (
	"math"
	"sync"
	"time"

	"livecap/log"
)

// rms is the voice-activity proxy: root-mean-square magnitude of
// channel 0 of an interleaved chunk, in raw int16 units. Crude on
// purpose; the gate is a fixed threshold, not adaptive.
func rms(samples []int16, channels int) float64 {
	if channels <= 0 || len(samples) < channels {
		return 0
	}
	var sum float64
	n := 0
	for i := 0; i < len(samples); i += channels {
		v := float64(samples[i])
		sum += v * v
		n++
	}
	return math.Sqrt(sum / float64(n))
}

// captureLoop records one fixed-duration chunk at a time and forwards
// the ones whose energy clears the gate. Runs until the session is no
// longer active; a recorder failure force-stops the session.
func (c *Controller) captureLoop(wg *sync.WaitGroup) {
	defer wg.Done()

	for c.active() {
		if c.State() == StatePaused {
			time.Sleep(c.pausePoll)
			continue
		}

		start := time.Now()
		samples, err := c.recorder.Record(c.chunkFrames)
		if err != nil {
			log.Errorf("recording error: %v", err)
			c.sink.CaptureError(err)
			c.forceStop()
			break
		}

		level := rms(samples, c.channels)
		if level < c.threshold {
			log.Debugf("chunk dropped: rms %.1f below threshold %.1f", level, c.threshold)
			continue
		}

		log.Debugf("chunk queued: rms %.1f, %d samples", level, len(samples))
		c.queue.Push(chunk{
			samples:  samples,
			channels: c.channels,
			rate:     c.rate,
			start:    start,
		})
	}

	log.Info("capture loop stopped")
}
