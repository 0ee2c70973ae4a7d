// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the volume control channels
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg reports a volume adjustment made in the TUI
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg signals that the user asked to quit
type QuitMsg struct{}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(volCtrl *VolumeControl) Model {
	return Model{
		volume:     100,
		startTime:  time.Now(),
		volumeCtrl: volCtrl,
	}
}

// Run builds the TUI program. The caller starts it with Run on the
// returned program.
func Run(volCtrl *VolumeControl) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(volCtrl), tea.WithAltScreen())
	return p, nil
}
