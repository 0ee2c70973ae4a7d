// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Defines application state, update logic, and rendering
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the TUI state
type Model struct {
	// Engine format
	backend    string
	sampleRate int
	channels   int
	bitDepth   int

	// Metadata
	title  string
	artist string
	album  string

	// Playback
	volume int
	muted  bool

	// Stats
	cycles    uint64
	frames    uint64
	underruns uint64
	sources   int

	// Debug
	showDebug  bool
	goroutines int
	memAlloc   uint64
	memSys     uint64

	startTime time.Time
	quitting  bool

	// Dimensions
	width  int
	height int

	volumeCtrl *VolumeControl
}

// StatusMsg updates TUI state. Nil pointer fields leave the current
// value alone, so senders can update one group at a time.
type StatusMsg struct {
	Backend    string
	SampleRate int
	Channels   int
	BitDepth   int
	Title      string
	Artist     string
	Album      string
	Volume     *int
	Muted      *bool
	Cycles     uint64
	Frames     uint64
	Underruns  uint64
	Sources    int
	Goroutines int
	MemAlloc   uint64
	MemSys     uint64
}

type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tickEvery()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		return m, tickEvery()
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Stopping playback...\n"
	}
	if m.width == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("Cadence Player"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Output: "))
	b.WriteString(valueStyle.Render(m.backend))
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Format: "))
	if m.sampleRate > 0 {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d Hz %s %d-bit",
			m.sampleRate, channelName(m.channels), m.bitDepth)))
	} else {
		b.WriteString(valueStyle.Render("(none)"))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Uptime: "))
	b.WriteString(valueStyle.Render(time.Since(m.startTime).Round(time.Second).String()))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Now Playing"))
	b.WriteString("\n")
	if m.title != "" {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %s", truncate(m.title, 48))))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %s - %s",
			truncate(m.artist, 24), truncate(m.album, 24))))
	} else {
		b.WriteString(valueStyle.Render("  (no metadata)"))
	}
	b.WriteString("\n\n")

	muteTag := ""
	if m.muted {
		muteTag = " [muted]"
	}
	b.WriteString(headerStyle.Render("Volume: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %d%%%s",
		renderBar(m.volume, 100, 10), m.volume, muteTag)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("Sources (%d)", m.sources)))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(fmt.Sprintf("  Cycles: %d  Frames: %d  Underruns: %d",
		m.cycles, m.frames, m.underruns)))
	b.WriteString("\n")

	if m.showDebug {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Debug"))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(fmt.Sprintf("  Goroutines: %d  Mem: %s / %s",
			m.goroutines, formatBytes(m.memAlloc), formatBytes(m.memSys))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).
		Render("↑/↓:Volume  m:Mute  d:Debug  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		m.notifyVolume()
	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		m.notifyVolume()
	case "m":
		m.muted = !m.muted
		m.notifyVolume()
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// notifyVolume pushes the current volume state to the control channel
// without blocking the update loop.
func (m Model) notifyVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
	}
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Backend != "" {
		m.backend = msg.Backend
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bitDepth = msg.BitDepth
	}
	if msg.Title != "" {
		m.title = msg.Title
		m.artist = msg.Artist
		m.album = msg.Album
	}
	if msg.Volume != nil {
		m.volume = *msg.Volume
	}
	if msg.Muted != nil {
		m.muted = *msg.Muted
	}
	if msg.Cycles != 0 {
		m.cycles = msg.Cycles
		m.frames = msg.Frames
		m.underruns = msg.Underruns
		m.sources = msg.Sources
	}
	if msg.Goroutines != 0 {
		m.goroutines = msg.Goroutines
		m.memAlloc = msg.MemAlloc
		m.memSys = msg.MemSys
	}
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	switch channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
