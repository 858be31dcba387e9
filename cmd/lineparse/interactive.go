package main

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	unsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD166"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type parseState int

const (
	stateEmpty parseState = iota
	stateParsed
	stateFallback
	stateFault
)

type interactiveModel struct {
	err      error
	compiled *schema.Compiled
	record   any
	filename string
	input    textinput.Model
	state    parseState
	showJSON bool
	failed   bool
}

func newInteractiveModel(s *schema.Schema, filename string) (*interactiveModel, error) {
	m := &interactiveModel{filename: filename}

	c, err := s.Compile(func(string, any) { m.failed = true })
	if err != nil {
		return nil, err
	}
	m.compiled = c

	ti := textinput.New()
	ti.Placeholder = "paste or type a line"
	ti.Prompt = "> "
	ti.Width = 100
	ti.CharLimit = 0
	ti.Focus()
	m.input = ti
	return m, nil
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+j":
			m.showJSON = !m.showJSON
			return m, nil
		case "ctrl+u":
			m.input.SetValue("")
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.parse(m.input.Value())
	return m, cmd
}

func (m *interactiveModel) parse(line string) {
	if line == "" {
		m.state, m.record, m.err = stateEmpty, nil, nil
		return
	}

	m.failed = false
	m.record, m.err = m.compiled.Parse(line)
	switch {
	case m.err != nil:
		m.state = stateFault
	case m.failed:
		m.state = stateFallback
	default:
		m.state = stateParsed
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lineparse"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state {
	case stateEmpty:
		b.WriteString(helpStyle.Render("waiting for input"))
	case stateParsed:
		b.WriteString(resultStyle.Render("parsed"))
	case stateFallback:
		b.WriteString(warnStyle.Render("line does not match the plan; fields below were written before it stopped"))
	case stateFault:
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s: %v", errors.KindOf(m.err), m.err)))
	}
	b.WriteString("\n\n")

	if m.record != nil {
		if m.showJSON {
			out, err := json.MarshalIndent(m.record, "", "  ")
			if err != nil {
				b.WriteString(errorStyle.Render(err.Error()))
			} else {
				b.WriteString(valueStyle.Render(string(out)))
			}
		} else {
			m.writeFields(&b)
		}
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("ctrl+j toggle json • ctrl+u clear • esc quit"))
	return b.String()
}

func (m *interactiveModel) writeFields(b *strings.Builder) {
	v := reflect.ValueOf(m.record).Elem()
	t := v.Type()

	width := 0
	for i := 0; i < t.NumField(); i++ {
		width = max(width, len(t.Field(i).Tag.Get("parse")))
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("parse")
		b.WriteString(nameStyle.Render(name + strings.Repeat(" ", width-len(name))))
		b.WriteString("  ")
		b.WriteString(typeStyle.Render(fmt.Sprintf("%-16s", f.Type)))
		b.WriteString(fieldValue(v.Field(i)))
		b.WriteString("\n")
	}
}

func fieldValue(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return unsetStyle.Render("nil")
		}
		v = v.Elem()
	}
	if v.IsZero() {
		return unsetStyle.Render(fmt.Sprintf("%q", fmt.Sprint(v.Interface())))
	}
	return valueStyle.Render(fmt.Sprint(v.Interface()))
}

func runInteractive(s *schema.Schema, filename string) error {
	m, err := newInteractiveModel(s, filename)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
