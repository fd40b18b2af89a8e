package panels

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/crowdcraft/internal/engine"
	"github.com/zappabad/crowdcraft/tui/styles"
)

// ChartPanel draws the daily price series as a terminal line chart, with
// the intrinsic value overlaid as a faint second line.
type ChartPanel struct {
	series []engine.DaySnapshot

	focused bool
	width   int
	height  int
}

// NewChartPanel creates an empty chart panel.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Append adds one day to the series.
func (p *ChartPanel) Append(snap engine.DaySnapshot) {
	p.series = append(p.series, snap)
}

// SetSize updates the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused updates focus state.
func (p *ChartPanel) SetFocused(focused bool) {
	p.focused = focused
}

// View renders the panel.
func (p *ChartPanel) View() string {
	var content strings.Builder
	content.WriteString(styles.RenderTitle("Price", p.focused))
	content.WriteString("\n")

	chartWidth := p.width - 12 // leave room for the price axis
	chartHeight := p.height - 5
	if chartHeight < 4 {
		chartHeight = 4
	}
	if chartWidth < 10 {
		chartWidth = 10
	}

	visible := p.series
	if len(visible) > chartWidth {
		visible = visible[len(visible)-chartWidth:]
	}

	if len(visible) == 0 {
		content.WriteString(styles.ChartAxisStyle.Render("waiting for first day..."))
		return p.frame(content.String())
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range visible {
		lo = math.Min(lo, math.Min(s.Price, s.Intrinsic))
		hi = math.Max(hi, math.Max(s.Price, s.Intrinsic))
	}
	if hi == lo {
		hi = lo + 1
	}

	row := func(v float64) int {
		r := int(float64(chartHeight-1) * (hi - v) / (hi - lo))
		if r < 0 {
			r = 0
		}
		if r >= chartHeight {
			r = chartHeight - 1
		}
		return r
	}

	grid := make([][]rune, chartHeight)
	for i := range grid {
		grid[i] = make([]rune, len(visible))
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	for col, s := range visible {
		grid[row(s.Intrinsic)][col] = '·'
		grid[row(s.Price)][col] = '█'
	}

	for i, line := range grid {
		label := "          "
		if i == 0 {
			label = fmt.Sprintf("%9.2f ", hi)
		} else if i == chartHeight-1 {
			label = fmt.Sprintf("%9.2f ", lo)
		}
		content.WriteString(styles.ChartAxisStyle.Render(label))
		content.WriteString(p.renderRow(line))
		content.WriteString("\n")
	}

	last := visible[len(visible)-1]
	content.WriteString(styles.ChartAxisStyle.Render(
		fmt.Sprintf("day %d   █ price   · intrinsic", last.Day)))

	return p.frame(content.String())
}

func (p *ChartPanel) renderRow(line []rune) string {
	var b strings.Builder
	for _, r := range line {
		switch r {
		case '█':
			b.WriteString(styles.PriceLineStyle.Render("█"))
		case '·':
			b.WriteString(styles.IntrinsicLineStyle.Render("·"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (p *ChartPanel) frame(content string) string {
	style := styles.PanelStyle
	if p.focused {
		style = styles.FocusedPanelStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}
