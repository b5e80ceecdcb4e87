// Package transcriber turns one chunk of normalized mono audio into
// text. Backends are opaque: samples in, text out, no partial results.
package transcriber

import (
	"context"
	"fmt"
	"os"
)

// Transcription language is fixed; the pipeline does not auto-detect.
const language = "en"

type Transcriber interface {
	Name() string
	// Transcribe consumes float32 samples in [-1, 1] at sampleRate and
	// returns the recognized text, untrimmed.
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error)
}

// New selects a backend from the environment. An error here means no
// recognizer is available at all; callers treat it as fatal at startup.
func New() (Transcriber, error) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return NewGroq(key), nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAI(key), nil
	}
	return nil, fmt.Errorf("set GROQ_API_KEY or OPENAI_API_KEY environment variable")
}
