package audio

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

const fakeFrameSize = 256 // frames per callback

// FakeContext is a scripted Context for tests: a fixed device list plus
// per-device open/start failure injection. Attempts records the order
// in which NewCapture touched devices.
type FakeContext struct {
	mu        sync.Mutex
	devices   []DeviceInfo
	failOpen  map[string]bool
	failStart map[string]bool
	attempts  []string
}

func NewFakeContext(devices ...DeviceInfo) *FakeContext {
	return &FakeContext{
		devices:   devices,
		failOpen:  make(map[string]bool),
		failStart: make(map[string]bool),
	}
}

func (f *FakeContext) FailOpen(id string)  { f.failOpen[id] = true }
func (f *FakeContext) FailStart(id string) { f.failStart[id] = true }

func (f *FakeContext) Attempts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.attempts...)
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) {
	return f.devices, nil
}

func (f *FakeContext) NewCapture(device *DeviceInfo, cfg CaptureConfig) (CaptureDevice, error) {
	f.mu.Lock()
	f.attempts = append(f.attempts, device.ID)
	f.mu.Unlock()

	if f.failOpen[device.ID] {
		return nil, fmt.Errorf("fake: device %s is busy", device.ID)
	}
	fc := NewFakeCapture(nil, cfg)
	fc.name = device.Name
	if f.failStart[device.ID] {
		fc.startErr = fmt.Errorf("fake: device %s rejected %d Hz", device.ID, cfg.SampleRate)
	}
	return fc, nil
}

func (f *FakeContext) Close() {}

// FakeCapture feeds a scripted int16 stream to the callback after Start,
// then endless silence so a Record call can always fill its buffer.
// With Stalled set it feeds nothing, exercising the stall guard.
type FakeCapture struct {
	name     string
	cfg      CaptureConfig
	script   []int16
	startErr error
	Stalled  bool

	mu       sync.Mutex
	cb       DataCallback
	stopCh   chan struct{}
	feedDone chan struct{}
	started  int // Start call count
}

func NewFakeCapture(script []int16, cfg CaptureConfig) *FakeCapture {
	return &FakeCapture{script: script, cfg: cfg}
}

func (f *FakeCapture) DeviceName() string {
	if f.name != "" {
		return f.name
	}
	return "fake"
}

func (f *FakeCapture) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *FakeCapture) ClearCallback() {
	f.mu.Lock()
	f.cb = nil
	f.mu.Unlock()
}

func (f *FakeCapture) Start() error {
	f.mu.Lock()
	f.started++
	f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}

	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})

	if f.Stalled {
		close(f.feedDone)
		return nil
	}

	channels := int(f.cfg.Channels)
	if channels == 0 {
		channels = 1
	}
	chunkSamples := fakeFrameSize * channels

	go func() {
		defer close(f.feedDone)
		pos := 0
		silence := make([]byte, chunkSamples*2)
		for {
			select {
			case <-f.stopCh:
				return
			case <-time.After(time.Millisecond):
			}

			f.mu.Lock()
			cb := f.cb
			f.mu.Unlock()
			if cb == nil {
				continue
			}

			if pos < len(f.script) {
				end := min(pos+chunkSamples, len(f.script))
				data := make([]byte, (end-pos)*2)
				for i, s := range f.script[pos:end] {
					binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
				}
				cb(data, uint32((end-pos)/channels))
				pos = end
			} else {
				cb(silence, fakeFrameSize)
			}
		}
	}()

	return nil
}

func (f *FakeCapture) Stop() {
	if f.stopCh == nil {
		return
	}
	select {
	case <-f.stopCh:
	default:
		close(f.stopCh)
	}
	<-f.feedDone
}

func (f *FakeCapture) Close() {}
