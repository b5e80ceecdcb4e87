package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"livecap/audio"
	"livecap/log"
	"livecap/transcriber"
)

func main() {
	logPath, err := log.ResolveDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	// Recognizer first: without it no session can ever start.
	trans, err := transcriber.New()
	if err != nil {
		log.Errorf("recognizer init error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: livecap needs an interactive terminal")
		os.Exit(1)
	}

	ctx, err := audio.NewContext()
	if err != nil {
		log.Errorf("audio context init error: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing audio: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Close()

	cfg := audio.CaptureConfig{SampleRate: captureRate, Channels: captureChannels}
	selected := audio.Probe(ctx, deviceCandidates, cfg)
	logDeviceTable(ctx, selected)

	// A failed probe is not fatal: the TUI comes up with start disabled.
	var recorder ChunkRecorder
	deviceName := ""
	if selected != nil {
		capture, err := ctx.NewCapture(selected, cfg)
		if err != nil {
			log.Errorf("capture device init error: %v", err)
		} else {
			defer capture.Close()
			recorder = audio.NewRecorder(capture, cfg)
			deviceName = selected.Name
		}
	}

	ctrl := NewController(recorder, trans, tuiSink{})
	store := NewTranscriptStore(transcriptPath)

	p := tea.NewProgram(newTUIModel(ctrl, store, deviceName, trans.Name()), tea.WithAltScreen())
	setTUIProgram(p)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		ctrl.Stop()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.Errorf("TUI error: %v", err)
		os.Exit(1)
	}
	ctrl.Stop()
}

// logDeviceTable records the diagnostic listing of enumerated input
// devices. Display-only; selection already happened in the probe.
func logDeviceTable(ctx audio.Context, selected *audio.DeviceInfo) {
	devices, err := ctx.Devices()
	if err != nil {
		log.Warnf("device enumeration failed: %v", err)
		return
	}
	log.Info("available input devices:")
	for i, d := range devices {
		marker := ""
		if selected != nil && d.ID == selected.ID {
			marker = "  SELECTED"
		}
		log.Infof("  %2d | %s%s", i, d.Name, marker)
	}
}
