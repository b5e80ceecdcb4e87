package audio

import (
	"livecap/log"
)

// Probe walks candidate device indices in priority order and returns the
// first enumerated input device that can actually open a capture stream
// at the requested rate and channel count. The test stream is started
// and immediately torn down. A failed open is conclusive for that
// candidate; there are no retries. Returns nil when every candidate
// fails, which is a normal outcome (no working microphone), not an
// error.
func Probe(ctx Context, candidates []int, cfg CaptureConfig) *DeviceInfo {
	devices, err := ctx.Devices()
	if err != nil {
		log.Errorf("probe: device enumeration failed: %v", err)
		return nil
	}

	for _, idx := range candidates {
		if idx < 0 || idx >= len(devices) {
			log.Debugf("probe: no device at index %d", idx)
			continue
		}
		dev := devices[idx]
		log.Infof("probe: testing index %d: %s", idx, dev.Name)

		capture, err := ctx.NewCapture(&dev, cfg)
		if err != nil {
			log.Warnf("probe: index %d failed to open: %v", idx, err)
			continue
		}
		if err := capture.Start(); err != nil {
			capture.Close()
			log.Warnf("probe: index %d failed to start at %d Hz: %v", idx, cfg.SampleRate, err)
			continue
		}
		capture.Stop()
		capture.Close()

		log.Infof("probe: selected index %d (%s) at %d Hz", idx, dev.Name, cfg.SampleRate)
		return &dev
	}

	log.Error("probe: no working capture device among candidates")
	return nil
}
