package main

import (
	"errors"
	"math"
	"testing"

	"livecap/transcriber"
)

func TestRMSUsesChannelZeroOnly(t *testing.T) {
	// Channel 0 is all 100s; channel 1 is all 900s and must not count.
	samples := []int16{100, 900, 100, 900, 100, 900, 100, 900}
	got := rms(samples, 2)
	if math.Abs(got-100) > 0.001 {
		t.Fatalf("rms = %f, want 100", got)
	}
}

func TestRMSMono(t *testing.T) {
	got := rms([]int16{3, 4, 3, 4}, 1)
	want := math.Sqrt((9 + 16 + 9 + 16) / 4.0)
	if math.Abs(got-want) > 0.001 {
		t.Fatalf("rms = %f, want %f", got, want)
	}
}

func TestRMSEmpty(t *testing.T) {
	if got := rms(nil, 1); got != 0 {
		t.Fatalf("rms(nil) = %f, want 0", got)
	}
	if got := rms([]int16{5}, 2); got != 0 {
		t.Fatalf("rms on a short buffer = %f, want 0", got)
	}
}

func TestEnergyGateDropsQuietChunks(t *testing.T) {
	// One loud chunk (RMS 50) and one quiet chunk (RMS 5) against a
	// threshold of 10: only the loud one should reach the recognizer.
	rec := newScriptedRecorder(2,
		constChunk(80, 2, 50),
		constChunk(80, 2, 5),
	)
	fake := transcriber.NewFake(transcriber.FakeResponse{Text: "hello world"})
	sink := newRecordedSink()
	c := newTestController(rec, fake, sink)

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitFor(t, "the loud chunk's result", func() bool {
		return len(sink.Results()) >= 1
	})
	c.Stop()
	sink.waitStopped(t)
	waitState(t, c, StateIdle)

	results := sink.Results()
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %v", len(results), results)
	}
	if results[0].text != "hello world" {
		t.Fatalf("result text = %q, want %q", results[0].text, "hello world")
	}
	if results[0].latency <= 0 {
		t.Fatalf("latency = %v, want > 0", results[0].latency)
	}
	if fake.Calls() != 1 {
		t.Fatalf("recognizer ran %d times, want 1", fake.Calls())
	}
}

func TestCaptureErrorForcesStop(t *testing.T) {
	rec := newScriptedRecorder(2)
	rec.errAt = 0
	rec.err = errors.New("device unplugged")
	sink := newRecordedSink()
	c := newTestController(rec, transcriber.NewFake(), sink)

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sink.waitStopped(t)
	waitState(t, c, StateIdle)

	errs := sink.CaptureErrors()
	if len(errs) != 1 {
		t.Fatalf("got %d capture errors, want 1", len(errs))
	}
	if errs[0] != rec.err {
		t.Fatalf("capture error = %v, want %v", errs[0], rec.err)
	}
	if sink.StoppedCount() != 1 {
		t.Fatalf("SessionStopped fired %d times, want 1", sink.StoppedCount())
	}
}
