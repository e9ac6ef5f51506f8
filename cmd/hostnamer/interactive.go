package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Control-D-Inc/hostnamer"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(14)
	finalStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	draftStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hostnameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// placeholders are shown in empty inputs, together they compose a valid hostname.
var placeholders = map[hostnamer.Field]string{
	hostnamer.FieldOrganization: "org",
	hostnamer.FieldTier:         "prod",
	hostnamer.FieldRole:         "web",
	hostnamer.FieldSequence:     "1",
	hostnamer.FieldProvider:     "aws",
	hostnamer.FieldRegion:       "us-east-1",
	hostnamer.FieldDomain:       "example.com",
}

type formKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Copy key.Binding
	Quit key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Copy: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// formModel is a terminal form feeding every keystroke to the validator.
type formModel struct {
	validator *hostnamer.Validator
	fields    []hostnamer.Field
	inputs    []textinput.Model
	focus     int
	result    hostnamer.Result
	status    string
	keys      formKeyMap
	copyFunc  func(string) error
}

func newFormModel(validator *hostnamer.Validator, copyFunc func(string) error) formModel {
	m := formModel{
		validator: validator,
		fields:    hostnamer.Fields(),
		result:    validator.Result(),
		keys:      newFormKeyMap(),
		copyFunc:  copyFunc,
	}
	state := validator.State()
	for i, f := range m.fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[f]
		in.SetValue(state.Get(f))
		if i == 0 {
			in.Focus()
		}
		in.Width = inputWidth(in)
		m.inputs = append(m.inputs, in)
	}
	return m
}

// inputWidth sizes an input to its value, or to its placeholder while empty.
func inputWidth(in textinput.Model) int {
	if v := in.Value(); v != "" {
		return utf8.RuneCountInString(v) + 1
	}
	return utf8.RuneCountInString(in.Placeholder) + 1
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.moveFocus(1), nil
		case key.Matches(msg, m.keys.Prev):
			return m.moveFocus(-1), nil
		case key.Matches(msg, m.keys.Copy):
			return m.copyHostname(), nil
		}
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m = m.fieldChanged(m.fields[m.focus], after)
	}
	return m, cmd
}

func (m formModel) fieldChanged(f hostnamer.Field, value string) formModel {
	r, err := m.validator.OnFieldChanged(f, value)
	if err != nil {
		mainLog.Error().Err(err).Msg("could not update naming field")
		return m
	}
	m.result = r
	m.status = ""
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth(m.inputs[i])
	}
	return m
}

func (m formModel) moveFocus(delta int) formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) copyHostname() formModel {
	hostname, ok := m.result.Final()
	if !ok {
		m.status = "fix the errors above before copying"
		return m
	}
	if err := m.copyFunc(hostname); err != nil {
		mainLog.Warn().Err(err).Msg("could not copy hostname to clipboard")
		m.status = "could not copy to clipboard"
		return m
	}
	m.status = "Copied to clipboard ✓"
	return m
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("hostnamer"))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		b.WriteString(labelStyle.Render(string(f)))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if hostname, ok := m.result.Final(); ok {
		b.WriteString(hostnameStyle.Render(finalStyle.Render(hostname)))
	} else {
		b.WriteString(hostnameStyle.Render(draftStyle.Render(m.result.Hostname)))
	}
	b.WriteString("\n")
	for _, msg := range m.result.Errors() {
		b.WriteString(errorStyle.Render("• " + msg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	help := []string{"tab/shift+tab move", "esc quit"}
	if m.result.Valid() {
		help = append(help, "ctrl+y copy to clipboard")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Compose a hostname in an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("interactive mode requires a terminal")
			}
			validator, err := newValidator()
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(newFormModel(validator, clipboard.WriteAll)).Run()
			if err != nil {
				return fmt.Errorf("could not run interactive form: %w", err)
			}
			if fm, ok := final.(formModel); ok {
				if hostname, ok := fm.result.Final(); ok {
					fmt.Fprintln(cmd.OutOrStdout(), hostname)
				}
			}
			return nil
		},
	}
}
