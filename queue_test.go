package main

import (
	"testing"
	"time"
)

func TestQueueFIFO(t *testing.T) {
	q := newChunkQueue()
	for _, v := range []int16{1, 2, 3} {
		q.Push(chunk{samples: []int16{v}, channels: 1, rate: 16000, start: time.Now()})
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	for _, want := range []int16{1, 2, 3} {
		c, ok := q.Pop(time.Second)
		if !ok {
			t.Fatal("Pop timed out with items queued")
		}
		if c.samples[0] != want {
			t.Fatalf("popped %d, want %d", c.samples[0], want)
		}
	}
}

func TestQueuePopTimeout(t *testing.T) {
	q := newChunkQueue()
	begin := time.Now()
	_, ok := q.Pop(30 * time.Millisecond)
	if ok {
		t.Fatal("Pop returned ok on an empty queue")
	}
	if elapsed := time.Since(begin); elapsed < 30*time.Millisecond {
		t.Fatalf("Pop returned after %v, before the timeout", elapsed)
	}
}

func TestQueuePushWakesBlockedPop(t *testing.T) {
	q := newChunkQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop(2 * time.Second)
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(chunk{samples: []int16{7}, channels: 1, rate: 16000})

	select {
	case ok := <-done:
		if !ok {
			t.Fatal("Pop timed out despite a push")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake on push")
	}
}

func TestQueueClear(t *testing.T) {
	q := newChunkQueue()
	q.Push(chunk{samples: []int16{1}, channels: 1, rate: 16000})
	q.Push(chunk{samples: []int16{2}, channels: 1, rate: 16000})
	q.Clear()

	if q.Len() != 0 {
		t.Fatalf("Len after Clear = %d, want 0", q.Len())
	}
	if _, ok := q.Pop(20 * time.Millisecond); ok {
		t.Fatal("Pop returned an item after Clear")
	}
}
