// internal/tui/model.go
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/signalsfoundry/mission-replay/model"
)

// DataLoadedMsg carries the load summary into the view.
type DataLoadedMsg struct {
	NominalRows int
	AntennaRows int
	Stage       model.StageDefinition
}

// TickMsg carries the per-tick derived state into the view. The replay
// driver sends one via Program.Send after every simulation index update.
type TickMsg struct {
	Index       int
	Stage       model.StageDefinition
	Antenna     string
	Position    model.Position
	HasPosition bool
}

// DoneMsg tells the view the replay has finished.
type DoneMsg struct{}

// Model is the live replay status view.
type Model struct {
	loaded      bool
	done        bool
	index       int
	stage       model.StageDefinition
	antenna     string
	position    model.Position
	hasPosition bool
	nominalRows int
	antennaRows int
}

// NewModel creates a status view seeded with the load summary; per-tick
// state arrives via messages.
func NewModel(loaded DataLoadedMsg) Model {
	return Model{
		loaded:      true,
		nominalRows: loaded.NominalRows,
		antennaRows: loaded.AntennaRows,
		stage:       loaded.Stage,
	}
}

// Init is a required method for tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is a required method for tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case DataLoadedMsg:
		m.loaded = true
		m.nominalRows = msg.NominalRows
		m.antennaRows = msg.AntennaRows
		m.stage = msg.Stage
	case TickMsg:
		m.index = msg.Index
		m.stage = msg.Stage
		m.antenna = msg.Antenna
		m.position = msg.Position
		m.hasPosition = msg.HasPosition
	case DoneMsg:
		m.done = true
	}
	return m, nil
}

// View is a required method for tea.Model.
func (m Model) View() string {
	s := TitleStyle.Render("Mission Telemetry Replay") + "\n\n"
	if !m.loaded {
		return s + "Loading telemetry...\n"
	}

	s += LabelStyle.Render("Index") + fmt.Sprintf("%d\n", m.index)
	s += LabelStyle.Render("Stage") + StageStyle.Render(m.stage.Stage.String()) + "\n"
	s += LabelStyle.Render("Antenna") + AntennaStyle.Render(m.antenna) + "\n"
	if m.hasPosition {
		s += LabelStyle.Render("Position") +
			fmt.Sprintf("%.1f, %.1f, %.1f\n", m.position.X, m.position.Y, m.position.Z)
	}
	s += LabelStyle.Render("Tables") +
		fmt.Sprintf("%d trajectory rows, %d antenna rows\n", m.nominalRows, m.antennaRows)

	if m.done {
		s += "\nReplay finished."
	}
	return s + "\n" + HelpStyle.Render("Press 'q' to quit.") + "\n"
}
