package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/crowdcraft/internal/engine"
	simservice "github.com/zappabad/crowdcraft/internal/sim/service"
	"github.com/zappabad/crowdcraft/tui/panels"
	"github.com/zappabad/crowdcraft/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusChart      PanelFocus = 0
	FocusStats      PanelFocus = 1
	FocusPopulation PanelFocus = 2

	panelCount = 3
)

type snapshotMsg engine.DaySnapshot

// Model is the main TUI application model. It is a pure consumer of the
// simulation service's snapshot stream; no simulation decision runs here.
type Model struct {
	svc *simservice.Service

	chartPanel      *panels.ChartPanel
	statsPanel      *panels.StatsPanel
	populationPanel *panels.PopulationPanel

	focusedPanel PanelFocus

	width  int
	height int

	done  bool
	ready bool
}

// NewModel creates a new TUI model over a started simulation service.
func NewModel(svc *simservice.Service) *Model {
	pop := svc.Population()

	m := &Model{
		svc:          svc,
		chartPanel:   panels.NewChartPanel(),
		statsPanel:   panels.NewStatsPanel(pop, svc.BootstrapDays()),
		focusedPanel: FocusChart,
	}
	m.populationPanel = panels.NewPopulationPanel(pop.Momentum, pop.Value, m.applyPopulation)
	m.syncFocus()
	return m
}

func (m *Model) applyPopulation(momentum, value int) error {
	if err := m.svc.SetPopulation(momentum, value); err != nil {
		return err
	}
	m.statsPanel.SetPopulation(m.svc.Population())
	return nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.chartPanel.Init(),
		m.statsPanel.Init(),
		m.populationPanel.Init(),
		m.listenSnapshots(),
	)
}

// listenSnapshots waits for the next per-day snapshot from the service.
func (m *Model) listenSnapshots() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.svc.Snapshots()
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.focusedPanel != FocusPopulation || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case "tab":
			m.focusedPanel = (m.focusedPanel + 1) % panelCount
			m.syncFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.populationPanel, cmd = m.populationPanel.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case snapshotMsg:
		snap := engine.DaySnapshot(msg)
		m.chartPanel.Append(snap)
		m.statsPanel.Set(snap)
		if !snap.Active {
			m.done = true
			return m, nil
		}
		return m, m.listenSnapshots()
	}

	return m, nil
}

func (m *Model) syncFocus() {
	m.chartPanel.SetFocused(m.focusedPanel == FocusChart)
	m.statsPanel.SetFocused(m.focusedPanel == FocusStats)
	m.populationPanel.SetFocused(m.focusedPanel == FocusPopulation)
}

func (m *Model) layout() {
	sideWidth := 34
	chartWidth := m.width - sideWidth - 6
	if chartWidth < 40 {
		chartWidth = 40
	}
	bodyHeight := m.height - 4
	if bodyHeight < 12 {
		bodyHeight = 12
	}

	m.chartPanel.SetSize(chartWidth, bodyHeight)
	m.statsPanel.SetSize(sideWidth, bodyHeight/2)
	m.populationPanel.SetSize(sideWidth, bodyHeight-bodyHeight/2)
}

// View renders the full application.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.statsPanel.View(),
		m.populationPanel.View(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.chartPanel.View(),
		side,
	)

	var status strings.Builder
	status.WriteString(styles.StatusBarKeyStyle.Render("tab"))
	status.WriteString(" focus  ")
	status.WriteString(styles.StatusBarKeyStyle.Render("enter"))
	status.WriteString(" apply agents  ")
	status.WriteString(styles.StatusBarKeyStyle.Render("q"))
	status.WriteString(" quit")
	if m.done {
		status.WriteString("   simulation complete")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		styles.StatusBarStyle.Width(m.width).Render(status.String()),
	)
}
