package panels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/crowdcraft/tui/styles"
)

// PopulationField is the currently focused input field.
type PopulationField int

const (
	FieldMomentum PopulationField = iota
	FieldValue
)

// PopulationPanel edits the agent mix for the next run. The engine rejects
// reconfiguration mid-run; the panel surfaces that error instead of hiding
// the rule.
type PopulationPanel struct {
	momentumInput textinput.Model
	valueInput    textinput.Model
	currentField  PopulationField

	// apply is called with the parsed counts on submit.
	apply func(momentum, value int) error

	status string

	focused bool
	width   int
	height  int
}

// NewPopulationPanel creates the population input panel.
func NewPopulationPanel(momentum, value int, apply func(momentum, value int) error) *PopulationPanel {
	momentumInput := textinput.New()
	momentumInput.Placeholder = "Momentum agents"
	momentumInput.Width = 10
	momentumInput.CharLimit = 8
	momentumInput.SetValue(strconv.Itoa(momentum))

	valueInput := textinput.New()
	valueInput.Placeholder = "Value agents"
	valueInput.Width = 10
	valueInput.CharLimit = 8
	valueInput.SetValue(strconv.Itoa(value))

	return &PopulationPanel{
		momentumInput: momentumInput,
		valueInput:    valueInput,
		apply:         apply,
	}
}

// Init initializes the panel.
func (p *PopulationPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input while the panel is focused.
func (p *PopulationPanel) Update(msg tea.Msg) (*PopulationPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "down", "shift+tab":
			p.toggleField()
			return p, nil
		case "enter":
			p.submit()
			return p, nil
		}
	}

	var cmd tea.Cmd
	switch p.currentField {
	case FieldMomentum:
		p.momentumInput, cmd = p.momentumInput.Update(msg)
	case FieldValue:
		p.valueInput, cmd = p.valueInput.Update(msg)
	}
	return p, cmd
}

func (p *PopulationPanel) toggleField() {
	if p.currentField == FieldMomentum {
		p.currentField = FieldValue
	} else {
		p.currentField = FieldMomentum
	}
	p.syncFocus()
}

func (p *PopulationPanel) submit() {
	momentum, err := strconv.Atoi(strings.TrimSpace(p.momentumInput.Value()))
	if err != nil {
		p.status = "momentum count must be an integer"
		return
	}
	value, err := strconv.Atoi(strings.TrimSpace(p.valueInput.Value()))
	if err != nil {
		p.status = "value count must be an integer"
		return
	}
	if err := p.apply(momentum, value); err != nil {
		p.status = err.Error()
		return
	}
	p.status = fmt.Sprintf("applied: %d momentum / %d value", momentum, value)
}

// SetSize updates the panel dimensions.
func (p *PopulationPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused updates focus state and input cursors.
func (p *PopulationPanel) SetFocused(focused bool) {
	p.focused = focused
	p.syncFocus()
}

func (p *PopulationPanel) syncFocus() {
	p.momentumInput.Blur()
	p.valueInput.Blur()
	if !p.focused {
		return
	}
	switch p.currentField {
	case FieldMomentum:
		p.momentumInput.Focus()
	case FieldValue:
		p.valueInput.Focus()
	}
}

// View renders the panel.
func (p *PopulationPanel) View() string {
	var content strings.Builder
	content.WriteString(styles.RenderTitle("Agents (next run)", p.focused))
	content.WriteString("\n")

	content.WriteString(styles.LabelStyle.Render("Momentum "))
	content.WriteString(p.momentumInput.View())
	content.WriteString("\n")
	content.WriteString(styles.LabelStyle.Render("Value    "))
	content.WriteString(p.valueInput.View())
	content.WriteString("\n")

	if p.status != "" {
		content.WriteString(styles.LabelStyle.Render(p.status))
	}

	style := styles.PanelStyle
	if p.focused {
		style = styles.FocusedPanelStyle
	}
	return style.Width(p.width).Height(p.height).Render(content.String())
}
