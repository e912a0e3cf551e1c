package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	bridge "github.com/amosavian/WebNativeBridgeKit"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	moduleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type funcEntry struct {
	module   bridge.ModuleName
	function bridge.FunctionName
}

func (f funcEntry) String() string {
	return string(f.module) + "." + string(f.function)
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	host     *bridgeHost
	funcs    []funcEntry
	args     textinput.Model
	err      error
	result   string
	selected int
	state    modelState
}

type callResultMsg struct {
	err    error
	result string
}

func newInteractiveModel(host *bridgeHost) *interactiveModel {
	var funcs []funcEntry
	for _, mod := range host.reg.Modules() {
		for _, fn := range host.reg.Functions(mod) {
			funcs = append(funcs, funcEntry{module: mod, function: fn})
		}
	}
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].String() < funcs[j].String() })

	args := textinput.New()
	args.Placeholder = `{"key": "value"}`
	args.Prompt = "args: "
	args.Width = 60

	return &interactiveModel{
		host:  host,
		funcs: funcs,
		args:  args,
		state: stateSelectFunc,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.args.SetValue("")
				m.args.Focus()
				m.state = stateInputArgs

			case stateInputArgs:
				m.args.Blur()
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.args.Blur()
				m.state = stateSelectFunc
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.args, cmd = m.args.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) callFunction() tea.Msg {
	f := m.funcs[m.selected]

	payload := map[string]any{}
	if raw := strings.TrimSpace(m.args.Value()); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return callResultMsg{err: fmt.Errorf("args must be a JSON object: %w", err)}
		}
	}
	payload["functionName"] = string(f.function)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reply := m.host.core.Call(ctx, nil, f.module, payload)
	switch {
	case reply.Err != "":
		return callResultMsg{err: fmt.Errorf("%s", reply.Err)}
	case reply.Value != nil:
		encoded, err := json.MarshalIndent(reply.Value, "", "  ")
		if err != nil {
			return callResultMsg{err: err}
		}
		return callResultMsg{result: string(encoded)}
	default:
		return callResultMsg{result: "(nothing)"}
	}
}

func (m *interactiveModel) View() string {
	if len(m.funcs) == 0 {
		return errorStyle.Render("No modules registered.\n\nPress q to quit.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Bridge Playground"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.funcs {
			line := moduleStyle.Render(string(f.module)) + "." + funcStyle.Render(string(f.function))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.String())))
		b.WriteString(m.args.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.String())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(host *bridgeHost) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(host), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
