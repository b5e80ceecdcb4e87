package main

import "time"

// EventSink abstracts the presentation surface. Pipeline goroutines
// call these directly; implementations must marshal onto their own
// execution context (the TUI sink goes through Program.Send).
type EventSink interface {
	SessionStarted(device string)
	SessionStopped()
	Paused(paused bool)
	Result(text string, latency time.Duration)
	CaptureError(err error)
}
