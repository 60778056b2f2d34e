package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spin runs fn while a spinner with message is shown on w.
// The spinner only renders when w is a terminal; otherwise fn runs undecorated.
func Spin(w io.Writer, message string, fn func() error) error {
	if !IsTerminal(w) {
		return fn()
	}

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(w), tea.WithInput(nil))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// Spinner failures never affect the run
		_, _ = p.Run()
	}()

	err := fn()
	p.Send(spinnerDoneMsg{err: err})
	<-finished

	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if !m.done {
		return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
	}
	// The report follows, so the spinner line is cleared
	return ""
}
