package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"livecap/log"
)

// TUI message types. Pipeline goroutines never touch the model; they
// send these through Program.Send and Bubble Tea delivers them on the
// TUI's own loop.
type SessionStartedMsg struct{ Device string }
type SessionStoppedMsg struct{}
type PausedMsg struct{ Paused bool }
type ResultMsg struct {
	Text    string
	Latency time.Duration
}
type CaptureErrorMsg struct{ Err error }

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

func setTUIProgram(p *tea.Program) {
	tuiMu.Lock()
	tuiProgram = p
	tuiMu.Unlock()
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// tuiSink is the pipeline-facing EventSink; every method is safe to call
// from any goroutine.
type tuiSink struct{}

func (tuiSink) SessionStarted(device string) { tuiSend(SessionStartedMsg{Device: device}) }
func (tuiSink) SessionStopped()              { tuiSend(SessionStoppedMsg{}) }
func (tuiSink) Paused(paused bool)           { tuiSend(PausedMsg{Paused: paused}) }
func (tuiSink) Result(text string, latency time.Duration) {
	tuiSend(ResultMsg{Text: text, Latency: latency})
}
func (tuiSink) CaptureError(err error) { tuiSend(CaptureErrorMsg{Err: err}) }

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	latencyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("86"))
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	recStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tuiModel struct {
	ctrl  *Controller
	store *TranscriptStore

	device   string
	provider string

	state       SessionState
	captions    string
	latency     time.Duration
	saveEnabled bool
	notice      string

	width, height int
}

func newTUIModel(ctrl *Controller, store *TranscriptStore, device, provider string) tuiModel {
	if device == "" {
		device = "none"
	}
	return tuiModel{
		ctrl:     ctrl,
		store:    store,
		device:   device,
		provider: provider,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionStartedMsg:
		m.state = StateRecording
		m.notice = ""
		m.latency = 0

	case SessionStoppedMsg:
		m.state = StateIdle

	case PausedMsg:
		if msg.Paused {
			m.state = StatePaused
		} else {
			m.state = StateRecording
		}

	case ResultMsg:
		m.captions += msg.Text + " "
		m.latency = msg.Latency
		if m.saveEnabled {
			if err := m.store.Append(msg.Text); err != nil {
				log.Errorf("error saving transcript: %v", err)
				m.notice = "transcript save failed"
			}
		}

	case CaptureErrorMsg:
		m.notice = fmt.Sprintf("recording error: %v", msg.Err)
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Stop()
		return m, tea.Quit

	case "s":
		if m.ctrl.State() == StateIdle {
			switch err := m.ctrl.Start(); err {
			case nil:
			case ErrNoDevice:
				m.notice = "no working microphone — check system settings"
			default:
				m.notice = err.Error()
			}
		} else {
			m.ctrl.Stop()
			m.state = StateStopping
		}

	case "p":
		m.ctrl.TogglePause()

	case "c":
		m.captions = ""
		m.latency = 0
		m.notice = ""

	case "w":
		m.saveEnabled = !m.saveEnabled

	case "y":
		if m.captions != "" {
			if err := clipboard.WriteAll(strings.TrimSpace(m.captions)); err != nil {
				log.Warnf("clipboard copy failed: %v", err)
				m.notice = "clipboard copy failed"
			}
		}
	}
	return m, nil
}

func (m tuiModel) stateLabel() string {
	switch m.state {
	case StateRecording:
		return recStyle.Render("● REC")
	case StatePaused:
		return pausedStyle.Render("‖ PAUSED")
	case StateStopping:
		return statusStyle.Render("… stopping")
	}
	return statusStyle.Render("idle")
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	width := min(m.width-2, 100)

	var b strings.Builder
	b.WriteString(titleStyle.Render("livecap — live transcriber"))
	b.WriteString("\n")
	b.WriteString(latencyStyle.Render(fmt.Sprintf("Latency: %.2fs", m.latency.Seconds())))
	b.WriteString("\n\n")

	captions := m.captions
	if captions == "" {
		captions = statusStyle.Render("(waiting for speech)")
	} else {
		captions = captionStyle.Width(width).Render(captions)
	}
	b.WriteString(captions)
	b.WriteString("\n\n")

	save := "off"
	if m.saveEnabled {
		save = "on"
	}
	b.WriteString(m.stateLabel())
	b.WriteString(statusStyle.Render(fmt.Sprintf("  mic: %s  [%s]  save: %s", m.device, m.provider, save)))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("s start/stop · p pause · c clear · w save · y copy · q quit"))
	return b.String()
}
