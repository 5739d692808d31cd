// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/styles"
)

// Mode selects the label and placeholder of the prompt input.
type Mode int

const (
	// ModeIdea asks for a new business idea.
	ModeIdea Mode = iota
	// ModeChange asks for a change to the current plan.
	ModeChange
)

// PromptInput wraps a bubbles textinput for idea prompts and instructions.
type PromptInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	mode      Mode
	width     int
}

// NewPromptInput creates a focused prompt input in idea mode.
func NewPromptInput(s *styles.Styles) *PromptInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60

	p := &PromptInput{
		textinput: ti,
		styles:    s,
		width:     60,
	}
	p.SetMode(ModeIdea)
	return p
}

// Init initialises the input.
func (p *PromptInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PromptInput) Update(msg tea.Msg) (*PromptInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the input with its label.
func (p *PromptInput) View() string {
	label := p.styles.Title.Render(p.label())
	field := p.styles.InputField.Render(p.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

func (p *PromptInput) label() string {
	if p.mode == ModeChange {
		return "Change: "
	}
	return "Idea: "
}

// SetMode switches between idea and change prompts.
func (p *PromptInput) SetMode(mode Mode) {
	p.mode = mode
	switch mode {
	case ModeChange:
		p.textinput.Placeholder = "e.g. the budget increased by 20%"
	default:
		p.textinput.Placeholder = "Describe your business idea..."
	}
}

// Mode returns the current mode.
func (p *PromptInput) Mode() Mode {
	return p.mode
}

// Value returns the current input value.
func (p *PromptInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PromptInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (p *PromptInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PromptInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PromptInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input, label included.
func (p *PromptInput) SetWidth(width int) {
	p.width = width
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Width returns the current width.
func (p *PromptInput) Width() int {
	return p.width
}

// Reset clears the input.
func (p *PromptInput) Reset() {
	p.textinput.Reset()
}
