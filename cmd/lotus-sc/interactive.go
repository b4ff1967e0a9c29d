package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/host"
	"github.com/lotus-sim/lotus-script-go/vars"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
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

type modelState int

const (
	stateStep modelState = iota
	stateEditVar
)

type varRow struct {
	decl   vars.Decl
	global bool
}

type interactiveModel struct {
	ctx      context.Context
	err      error
	stepErr  error
	sim      *simulation
	cfg      host.Config
	filename string
	rows     []varRow
	input    textinput.Model
	selected int
	state    modelState
	running  bool
}

func newInteractiveModel(ctx context.Context, cfg host.Config, filename string) *interactiveModel {
	return &interactiveModel{
		ctx:      ctx,
		cfg:      cfg,
		filename: filename,
		state:    stateStep,
	}
}

type loadedMsg struct {
	err error
	sim *simulation
}

type autoStepMsg struct{}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	sim, err := newSimulation(m.ctx, m.cfg, m.filename)
	return loadedMsg{sim: sim, err: err}
}

// step runs on the update goroutine; the engine is not shared with commands.
func (m *interactiveModel) step() {
	m.stepErr = m.sim.engine.Step(m.ctx, 0)
}

func (m *interactiveModel) schedule() tea.Cmd {
	d := time.Duration(m.cfg.Delta * float64(time.Second))
	return tea.Tick(d, func(time.Time) tea.Msg { return autoStepMsg{} })
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateEditVar {
			return m.updateEdit(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			if m.sim != nil {
				m.sim.Close(m.ctx)
			}
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}

		case " ", "n":
			if m.sim != nil && !m.running {
				m.step()
			}

		case "p":
			if m.sim != nil {
				m.running = !m.running
				if m.running {
					return m, m.schedule()
				}
			}

		case "enter":
			if m.sim != nil && len(m.rows) > 0 {
				m.prepareInput()
				m.state = stateEditVar
				return m, textinput.Blink
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.sim = msg.sim
		m.rows = m.rows[:0]
		for _, d := range msg.sim.public {
			m.rows = append(m.rows, varRow{decl: d})
		}
		for _, d := range msg.sim.global {
			m.rows = append(m.rows, varRow{decl: d, global: true})
		}

	case autoStepMsg:
		if m.running {
			m.step()
			return m, m.schedule()
		}
	}

	return m, nil
}

func (m *interactiveModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.sim.Close(m.ctx)
		return m, tea.Quit

	case "esc":
		m.state = stateStep
		return m, nil

	case "enter":
		row := m.rows[m.selected]
		v, err := parseVar(row.decl.Type, m.input.Value())
		if err != nil {
			m.stepErr = fmt.Errorf("set %s: %w", row.decl.Name, err)
		} else {
			m.sim.slot.Vehicle().SetVar(row.decl.Name, v)
			m.stepErr = nil
		}
		m.state = stateStep
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) prepareInput() {
	row := m.rows[m.selected]
	ti := textinput.New()
	ti.Prompt = row.decl.Name + ": "
	ti.Placeholder = row.decl.Type
	ti.Width = 40
	if v := m.sim.slot.Vehicle().Var(row.decl.Name); v != nil {
		ti.SetValue(formatVar(v))
	}
	ti.Focus()
	m.input = ti
}

// parseVar converts text into the representation the host stores for typ.
func parseVar(typ, text string) (any, error) {
	text = strings.TrimSpace(text)
	switch typ {
	case "i32", "i64", "u32", "u64":
		return strconv.ParseInt(text, 10, 64)
	case "f32", "f64":
		return strconv.ParseFloat(text, 64)
	case "bool":
		return strconv.ParseBool(text)
	case "string":
		return text, nil
	case "content_id":
		return parseContentID(text)
	default:
		return nil, fmt.Errorf("unsupported type %q", typ)
	}
}

// parseContentID reads the form printed by content.ID.String: user:sub[@version].
func parseContentID(text string) (content.ID, error) {
	ids, version, hasVersion := strings.Cut(text, "@")
	user, sub, ok := strings.Cut(ids, ":")
	if !ok {
		return content.ID{}, fmt.Errorf("content id %q: want user:sub[@version]", text)
	}
	u, err := strconv.ParseInt(user, 10, 32)
	if err != nil {
		return content.ID{}, err
	}
	s, err := strconv.ParseInt(sub, 10, 32)
	if err != nil {
		return content.ID{}, err
	}
	id := content.New(int32(u), int32(s))
	if hasVersion {
		if id.Version, err = strconv.ParseFloat(version, 64); err != nil {
			return content.ID{}, err
		}
	}
	return id, nil
}

func formatVar(v any) string {
	switch v := v.(type) {
	case content.ID:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.sim == nil {
		return "Loading script..."
	}

	var b strings.Builder
	e := m.sim.engine

	b.WriteString(titleStyle.Render("lotus-sc"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "tick %s  game time %s",
		resultStyle.Render(strconv.FormatUint(e.Tick(), 10)),
		resultStyle.Render(e.GameTime().Format("15:04:05.000")))
	if m.running {
		b.WriteString("  " + funcStyle.Render("running"))
	}
	b.WriteString("\n\n")

	b.WriteString(funcStyle.Render("Variables") + "\n")
	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("  none") + "\n")
	}
	values := m.sim.Values()
	for i, row := range m.rows {
		scope := ""
		if row.global {
			scope = " global"
		}
		value := "-"
		if v := values[row.decl.Name]; v != nil {
			value = formatVar(v)
		}
		line := fmt.Sprintf("%-24s %s = %s", row.decl.Name, typeStyle.Render(row.decl.Type+scope), value)
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if actions := m.sim.slot.Actions(); len(actions) > 0 {
		b.WriteString("\n" + funcStyle.Render("Actions") + "\n")
		ids := make([]string, 0, len(actions))
		for id := range actions {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "  %-24s %s\n", id, typeStyle.Render(string(actions[id])))
		}
	}

	if gizmos := e.Gizmos(); len(gizmos) > 0 {
		fmt.Fprintf(&b, "\n%s %d\n", funcStyle.Render("Gizmos"), len(gizmos))
	}

	if m.stepErr != nil {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.stepErr)) + "\n")
	}

	b.WriteString("\n")
	if m.state == stateEditVar {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter set • esc back"))
	} else {
		b.WriteString(helpStyle.Render("space step • p run/pause • ↑/↓ select • enter edit • q quit"))
	}
	return b.String()
}

func runInteractive(ctx context.Context, cfg host.Config, filename string) error {
	p := tea.NewProgram(newInteractiveModel(ctx, cfg, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
