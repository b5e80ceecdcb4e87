package transcriber

import (
	"context"
	"sync"
)

// FakeResponse scripts one Transcribe call.
type FakeResponse struct {
	Text string
	Err  error
}

// Fake replays a script of responses in order and records every call.
// An exhausted script keeps returning empty text.
type Fake struct {
	mu      sync.Mutex
	script  []FakeResponse
	served  int
	samples []int // sample count per call, in call order
	rates   []int
}

func NewFake(script ...FakeResponse) *Fake {
	return &Fake{script: script}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Transcribe(_ context.Context, samples []float32, sampleRate int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.samples = append(f.samples, len(samples))
	f.rates = append(f.rates, sampleRate)

	if f.served >= len(f.script) {
		return "", nil
	}
	r := f.script[f.served]
	f.served++
	return r.Text, r.Err
}

// Calls reports how many times Transcribe ran.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.samples)
}

// SampleCounts returns the per-call sample counts in call order.
func (f *Fake) SampleCounts() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.samples...)
}

// Rates returns the per-call sample rates in call order.
func (f *Fake) Rates() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.rates...)
}
