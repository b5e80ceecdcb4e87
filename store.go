package main

import (
	"os"
	"sync"
)

// TranscriptStore appends saved results, space-separated, to a plain
// text file. Write failures are the caller's to log; they never stop
// the pipeline.
type TranscriptStore struct {
	mu   sync.Mutex
	path string
}

func NewTranscriptStore(path string) *TranscriptStore {
	return &TranscriptStore{path: path}
}

func (s *TranscriptStore) Append(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(text + " ")
	return err
}
