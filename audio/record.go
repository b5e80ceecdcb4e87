package audio

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

// stallGrace is added on top of twice the expected chunk duration before
// a silent stream is declared dead.
var stallGrace = 2 * time.Second

// Recorder adapts a callback-driven CaptureDevice to a synchronous
// record-one-chunk call: Record returns only once the requested number
// of frames has been captured.
type Recorder struct {
	dev CaptureDevice
	cfg CaptureConfig
}

func NewRecorder(dev CaptureDevice, cfg CaptureConfig) *Recorder {
	return &Recorder{dev: dev, cfg: cfg}
}

func (r *Recorder) DeviceName() string {
	return r.dev.DeviceName()
}

// Record blocks until frames frames have arrived and returns the
// interleaved int16 samples. A stream that stops delivering data is
// reported as an error rather than blocking forever.
func (r *Recorder) Record(frames int) ([]int16, error) {
	total := frames * int(r.cfg.Channels)

	var mu sync.Mutex
	buf := make([]int16, 0, total)
	done := make(chan struct{})
	var once sync.Once

	r.dev.SetCallback(func(data []byte, _ uint32) {
		mu.Lock()
		for i := 0; i+1 < len(data) && len(buf) < total; i += 2 {
			buf = append(buf, int16(binary.LittleEndian.Uint16(data[i:])))
		}
		full := len(buf) >= total
		mu.Unlock()
		if full {
			once.Do(func() { close(done) })
		}
	})

	if err := r.dev.Start(); err != nil {
		r.dev.ClearCallback()
		return nil, fmt.Errorf("capture start: %w", err)
	}

	expected := time.Duration(frames) * time.Second / time.Duration(r.cfg.SampleRate)
	guard := time.NewTimer(2*expected + stallGrace)
	defer guard.Stop()

	select {
	case <-done:
	case <-guard.C:
		r.dev.Stop()
		r.dev.ClearCallback()
		mu.Lock()
		got := len(buf)
		mu.Unlock()
		return nil, fmt.Errorf("capture stalled: %d of %d samples", got, total)
	}

	r.dev.Stop()
	r.dev.ClearCallback()

	mu.Lock()
	out := buf[:total]
	mu.Unlock()
	return out, nil
}
