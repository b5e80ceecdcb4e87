package main

import "time"

// Pipeline configuration. Fixed at build time; livecap takes no flags.
const (
	captureRate     = 48000 // device capture rate, Hz
	captureChannels = 2
	targetRate      = 16000 // rate the recognizer expects, Hz
	chunkSeconds    = 5
	chunkDuration   = chunkSeconds * time.Second
	chunkFrames     = captureRate * chunkSeconds
	volumeThreshold = 10.0 // RMS gate, raw int16 units
	queueTimeout    = 5 * time.Second
	pausePoll       = 100 * time.Millisecond

	transcriptPath = "transcription.txt"
)

// deviceCandidates is the probe priority order. Index 1 first: the last
// device confirmed to open and carry signal on the reference setup.
var deviceCandidates = []int{1, 5, 9, 13, 0, 4, 14, 18, 19, 20}
