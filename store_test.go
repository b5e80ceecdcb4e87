package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTranscriptStoreAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcription.txt")
	s := NewTranscriptStore(path)

	if err := s.Append("hello world"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append("again"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(data), "hello world again "; got != want {
		t.Fatalf("file content = %q, want %q", got, want)
	}
}

func TestTranscriptStoreAppendError(t *testing.T) {
	s := NewTranscriptStore(filepath.Join(t.TempDir(), "missing", "transcription.txt"))
	if err := s.Append("text"); err == nil {
		t.Fatal("Append into a missing directory succeeded")
	}
}
