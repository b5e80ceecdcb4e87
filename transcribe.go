package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"livecap/log"
)

// downmix averages interleaved channels into one mono stream, keeping
// the int16 scale.
func downmix(samples []int16, channels int) []float32 {
	if channels <= 1 {
		out := make([]float32, len(samples))
		for i, s := range samples {
			out[i] = float32(s)
		}
		return out
	}
	frames := len(samples) / channels
	out := make([]float32, frames)
	for f := 0; f < frames; f++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += float32(samples[f*channels+ch])
		}
		out[f] = sum / float32(channels)
	}
	return out
}

// resampleLinear converts in from srcRate to dstRate by linear
// interpolation. The recognizer contract fixes only the target rate,
// not the algorithm.
func resampleLinear(in []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || len(in) == 0 {
		return in
	}
	n := len(in) * dstRate / srcRate
	if n == 0 {
		return nil
	}
	out := make([]float32, n)
	step := float64(srcRate) / float64(dstRate)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}

// preprocess prepares one chunk for the recognizer: mono, target rate,
// floats normalized to [-1, 1].
func preprocess(c chunk, dstRate int) []float32 {
	mono := downmix(c.samples, c.channels)
	res := resampleLinear(mono, c.rate, dstRate)
	out := make([]float32, len(res))
	for i, s := range res {
		out[i] = s / 32768.0
	}
	return out
}

// transcribeLoop drains the queue until the session is inactive AND the
// queue is empty. A failed chunk is logged and skipped; it never stops
// the loop. Latency is measured from chunk-capture start, so it includes
// the chunk's own recording duration.
func (c *Controller) transcribeLoop(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		ch, ok := c.queue.Pop(c.popTimeout)
		if !ok {
			if !c.active() {
				break
			}
			continue
		}

		samples := preprocess(ch, targetRate)
		text, err := c.trans.Transcribe(context.Background(), samples, targetRate)
		if err != nil {
			log.Errorf("transcription error: %v", err)
			continue
		}

		latency := time.Since(ch.start)
		text = strings.TrimSpace(text)
		if text == "" {
			log.Debugf("empty transcription, latency %.2fs", latency.Seconds())
			continue
		}

		log.Debugf("transcribed %q, latency %.2fs", text, latency.Seconds())
		c.resultCount.Add(1)
		c.sink.Result(text, latency)
	}

	log.Info("transcription loop stopped")
}
