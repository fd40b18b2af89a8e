package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/crowdcraft/internal/agents"
	"github.com/zappabad/crowdcraft/internal/engine"
	"github.com/zappabad/crowdcraft/tui/styles"
)

// StatsPanel shows the current engine readout: day, price, intrinsic value,
// demand and the agent mix.
type StatsPanel struct {
	snap          engine.DaySnapshot
	pop           agents.Population
	bootstrapDays int
	seen          bool

	focused bool
	width   int
	height  int
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel(pop agents.Population, bootstrapDays int) *StatsPanel {
	return &StatsPanel{pop: pop, bootstrapDays: bootstrapDays}
}

// Init initializes the panel.
func (p *StatsPanel) Init() tea.Cmd {
	return nil
}

// Set updates the displayed snapshot.
func (p *StatsPanel) Set(snap engine.DaySnapshot) {
	p.snap = snap
	p.seen = true
}

// SetPopulation updates the displayed agent mix.
func (p *StatsPanel) SetPopulation(pop agents.Population) {
	p.pop = pop
}

// SetSize updates the panel dimensions.
func (p *StatsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused updates focus state.
func (p *StatsPanel) SetFocused(focused bool) {
	p.focused = focused
}

// View renders the panel.
func (p *StatsPanel) View() string {
	var content strings.Builder
	content.WriteString(styles.RenderTitle("Market", p.focused))
	content.WriteString("\n")

	line := func(label, value string) {
		content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-11s", label)))
		content.WriteString(styles.ValueStyle.Render(value))
		content.WriteString("\n")
	}

	if !p.seen {
		content.WriteString(styles.LabelStyle.Render("waiting for first day..."))
		return p.frame(content.String())
	}

	line("Day", fmt.Sprintf("%d", p.snap.Day))
	line("Price", fmt.Sprintf("%.2f", p.snap.Price))
	line("Intrinsic", fmt.Sprintf("%.2f", p.snap.Intrinsic))

	demandStyle := styles.DemandSellStyle
	if p.snap.Demand >= 0 {
		demandStyle = styles.DemandBuyStyle
	}
	content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-11s", "Demand")))
	content.WriteString(demandStyle.Render(fmt.Sprintf("%+.4f", p.snap.Demand)))
	content.WriteString("\n")

	line("Agents", fmt.Sprintf("%d momentum / %d value", p.pop.Momentum, p.pop.Value))

	phase := "steady"
	if p.snap.Day <= p.bootstrapDays {
		phase = "bootstrap"
	}
	if !p.snap.Active {
		phase = "done"
	}
	line("Phase", phase)

	return p.frame(content.String())
}

func (p *StatsPanel) frame(content string) string {
	style := styles.PanelStyle
	if p.focused {
		style = styles.FocusedPanelStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}
