package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLogDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetDir(tmp)
	t.Cleanup(func() { Close(); SetDir("") })
	return tmp
}

func TestResolveDirEnv(t *testing.T) {
	t.Setenv("LIVECAP_LOG_PATH", "/tmp/livecap-env-log")
	got, err := ResolveDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/livecap-env-log" {
		t.Errorf("got %q, want /tmp/livecap-env-log", got)
	}
}

func TestResolveDirEnvRelative(t *testing.T) {
	t.Setenv("LIVECAP_LOG_PATH", "logs")
	got, err := ResolveDir()
	if err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(wd, "logs")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveDirDefault(t *testing.T) {
	t.Setenv("LIVECAP_LOG_PATH", "")
	got, err := ResolveDir()
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Error("expected non-empty default directory")
	}
	if !strings.Contains(got, "livecap") {
		t.Errorf("default dir %q does not mention livecap", got)
	}
}

func TestInitWritesDiagnostics(t *testing.T) {
	tmp := setupLogDir(t)
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	Info("probe_ok")
	Warnf("candidate %d skipped", 5)
	Errorf("capture error: %v", os.ErrClosed)
	Close()

	data, err := os.ReadFile(filepath.Join(tmp, "diagnostics_log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"probe_ok", "candidate 5 skipped", "capture error"} {
		if !strings.Contains(content, want) {
			t.Errorf("diagnostics log missing %q:\n%s", want, content)
		}
	}
}

func TestLoggingBeforeInitIsNoop(t *testing.T) {
	setupLogDir(t)
	// Must not panic without Init.
	Info("ignored")
	Errorf("ignored %d", 1)
	SessionStart("fake", 48000, 2)
	SessionEnd(0)
}
