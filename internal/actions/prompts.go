package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"braid.dev/braid/internal/runtime"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via BRAID_NON_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (BRAID_NON_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("BRAID_NON_INTERACTIVE") != "" || os.Getenv("BRAID_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// textInputModel is a simple text input prompt model
type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	err       error
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = fmt.Errorf("canceled")
			m.done = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	if m.done {
		return ""
	}
	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(fmt.Sprintf("%s\n%s\n\n(Press Enter to submit, Ctrl+C to cancel)", m.prompt, m.textInput.View()))
}

// confirmModel is a simple yes/no confirmation prompt model
type confirmModel struct {
	prompt string
	choice bool
	done   bool
	err    error
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = fmt.Errorf("canceled")
			m.done = true
			return m, tea.Quit
		case tea.KeyRunes:
			switch strings.ToLower(string(msg.Runes)) {
			case "y", "yes":
				m.choice = true
				m.done = true
				return m, tea.Quit
			case "n", "no":
				m.choice = false
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(fmt.Sprintf("%s [y/N]\n\n(Press y/yes or n/no, Enter to confirm, Ctrl+C to cancel)", m.prompt))
}

// PromptTextInput prompts the user for text input
func PromptTextInput(prompt, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	input := textinput.New()
	input.SetValue(defaultValue)
	input.Focus()

	model := textInputModel{textInput: input, prompt: prompt}
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	result := final.(textInputModel)
	if result.err != nil {
		return "", result.err
	}
	return strings.TrimSpace(result.textInput.Value()), nil
}

// PromptConfirm prompts the user for a yes/no confirmation
func PromptConfirm(prompt string) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	model := confirmModel{prompt: prompt}
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	result := final.(confirmModel)
	if result.err != nil {
		return false, result.err
	}
	return result.choice, nil
}

// PromptTicket asks for a ticket number, re-prompting until the input
// passes the configured format check.
func PromptTicket(rt *runtime.Context) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	validator := func(answer interface{}) error {
		ticket, ok := answer.(string)
		if !ok {
			return fmt.Errorf("expected a string")
		}
		if _, err := rt.Templates.ValidateTicket(strings.TrimSpace(ticket)); err != nil {
			return err
		}
		return nil
	}

	var ticket string
	prompt := &survey.Input{
		Message: "Ticket number",
		Help:    fmt.Sprintf("Must match %s", rt.Workflow.TicketPattern()),
	}
	if err := survey.AskOne(prompt, &ticket, survey.WithValidator(validator)); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return strings.TrimSpace(ticket), nil
}
