package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/snrlab/snrsim/internal/abundance"
	"github.com/snrlab/snrsim/internal/axis"
	"github.com/snrlab/snrsim/internal/config"
	"github.com/snrlab/snrsim/internal/viz"
)

type state int

const (
	stateMain state = iota
	stateAbundance
)

type itemKind int

const (
	itemParam itemKind = iota
	itemVariant
	itemWindowMode
	itemXMin
	itemXMax
	itemPlotKind
	itemISM
	itemEjecta
)

type item struct {
	kind itemKind
	row  *paramRow
}

// Model is the bubbletea application. Domain state lives in core; the value
// copy here carries only view state.
type Model struct {
	core *core

	state   state
	cursor  int
	editing bool
	editBuf string

	ed       *abundance.Editor
	abCursor int
	abEdit   bool
	abBuf    string

	dataDir string
	width   int
	height  int
}

func NewApp(cfg *config.Config) Model {
	return Model{
		core:    newCore(cfg),
		dataDir: ".snrsim",
		width:   100,
		height:  32,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// items lists the navigable panel lines: visible parameters first, then the
// selector and window controls.
func (m Model) items() []item {
	out := make([]item, 0, len(m.core.rows)+7)
	for _, row := range m.core.rows {
		if row.visible {
			out = append(out, item{kind: itemParam, row: row})
		}
	}
	out = append(out,
		item{kind: itemVariant},
		item{kind: itemWindowMode},
		item{kind: itemXMin},
		item{kind: itemXMax},
		item{kind: itemPlotKind},
		item{kind: itemISM},
		item{kind: itemEjecta},
	)
	return out
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateAbundance {
		return m.abundanceKey(msg)
	}
	return m.mainKey(msg)
}

func (m Model) mainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	items := m.items()
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	cur := items[m.cursor]

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "p":
		m.core.plot = m.core.plot.Toggle()
	case "S":
		m.core.saveSession(m.dataDir)
	case "r":
		m.core.resetDefaults()
	case "left", "h":
		m.adjust(cur, -1)
	case "right", "l":
		m.adjust(cur, 1)
	case "enter", " ":
		return m.activate(cur)
	}

	// Rule transitions can hide the row under the cursor.
	if n := len(m.items()); m.cursor >= n {
		m.cursor = n - 1
	}
	return m, nil
}

// adjust applies one left/right action to the focused line.
func (m *Model) adjust(cur item, dir int) {
	switch cur.kind {
	case itemParam:
		if !cur.row.enabled {
			return
		}
		switch cur.row.id {
		case "n":
			m.core.cycleEjectaIndex(dir)
		case "s":
			m.core.toggleAmbient()
		}
	case itemVariant:
		m.core.cycleVariant(dir)
	case itemWindowMode:
		m.core.cycleWindowMode(dir)
	case itemXMin:
		m.bump(axis.BoundMin, dir)
	case itemXMax:
		m.bump(axis.BoundMax, dir)
	case itemPlotKind:
		m.core.plot = m.core.plot.Toggle()
	}
}

func (m *Model) bump(b axis.Bound, dir int) {
	if _, ok := m.core.window.Bump(b, dir); !ok {
		m.core.status = "window edit rejected"
	} else {
		m.core.status = ""
	}
}

// activate handles enter on the focused line: numeric rows open the edit
// buffer, cycled rows step, abundance rows open the modal editor.
func (m Model) activate(cur item) (tea.Model, tea.Cmd) {
	switch cur.kind {
	case itemParam:
		if !cur.row.enabled {
			return m, nil
		}
		switch cur.row.id {
		case "n":
			m.core.cycleEjectaIndex(1)
		case "s":
			m.core.toggleAmbient()
		default:
			m.editing = true
			m.editBuf = formatValue(cur.row.value)
		}
	case itemVariant:
		m.core.cycleVariant(1)
	case itemWindowMode:
		m.core.cycleWindowMode(1)
	case itemXMin, itemXMax:
		m.editing = true
		if cur.kind == itemXMin {
			m.editBuf = formatValue(m.core.window.Min)
		} else {
			m.editBuf = formatValue(m.core.window.Max)
		}
	case itemPlotKind:
		m.core.plot = m.core.plot.Toggle()
	case itemISM:
		m.ed, _ = m.core.session.Open(abundance.ISM)
		m.state = stateAbundance
		m.abCursor = 0
	case itemEjecta:
		m.ed, _ = m.core.session.Open(abundance.Ejecta)
		m.state = stateAbundance
		m.abCursor = 0
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		m.editing = false
		m.editBuf = ""
	case "esc", "escape":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

func (m *Model) commitEdit() {
	v, err := strconv.ParseFloat(m.editBuf, 64)
	if err != nil {
		m.core.status = "not a number: " + m.editBuf
		return
	}
	cur := m.items()[m.cursor]
	switch cur.kind {
	case itemParam:
		m.core.setParam(cur.row.id, v)
	case itemXMin:
		if _, ok := m.core.window.SetBound(axis.BoundMin, v); !ok {
			m.core.status = "window edit rejected"
		}
	case itemXMax:
		if _, ok := m.core.window.SetBound(axis.BoundMax, v); !ok {
			m.core.status = "window edit rejected"
		}
	}
}

// abundanceKey drives the modal editor. Closing the window commits; only an
// explicit escape discards.
func (m Model) abundanceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.abEdit {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.abBuf, 64); err == nil {
				if !m.ed.SetElement(abundance.ElementOrder[m.abCursor], v) {
					m.core.status = "abundance values must be in (0, 100)"
				} else {
					m.core.status = ""
				}
			}
			m.abEdit = false
			m.abBuf = ""
		case "esc", "escape":
			m.abEdit = false
			m.abBuf = ""
		case "backspace":
			if len(m.abBuf) > 0 {
				m.abBuf = m.abBuf[:len(m.abBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' {
					m.abBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "escape":
		m.ed.Cancel()
		m.ed = nil
		m.state = stateMain
	case "q":
		m.ed.Commit()
		m.ed = nil
		m.state = stateMain
	case "ctrl+c":
		m.ed.Commit()
		m.ed = nil
		m.state = stateMain
		return m, tea.Quit
	case "up", "k":
		if m.abCursor > 0 {
			m.abCursor--
		}
	case "down", "j":
		if m.abCursor < len(abundance.ElementOrder)-1 {
			m.abCursor++
		}
	case "left", "h", "right", "l":
		m.cyclePreset()
	case "enter", " ":
		m.abEdit = true
		m.abBuf = formatValue(m.ed.Value(abundance.ElementOrder[m.abCursor]))
	}
	return m, nil
}

func (m *Model) cyclePreset() {
	names := abundance.PresetsFor(m.ed.Kind())
	idx := 0
	for i, n := range names {
		if n == m.ed.Mode() {
			idx = i
			break
		}
	}
	m.ed.SelectPreset(names[(idx+1)%len(names)])
}

func (m Model) View() string {
	if m.state == stateAbundance {
		return m.viewAbundance()
	}
	return m.viewMain()
}

func (m Model) viewMain() string {
	var b strings.Builder

	in := m.core.inputs()
	b.WriteString("\n  " + viz.Cyan.Render("snrsim") + "  " + viz.White.Render(viz.Title(in)) + "\n")
	b.WriteString("  " + viz.Dimmer.Render(strings.Repeat("─", 60)) + "\n\n")

	items := m.items()
	for i, it := range items {
		marker := "  "
		if i == m.cursor {
			marker = viz.Cyan.Render("▸ ")
		}
		b.WriteString("  " + marker + m.renderItem(it, i == m.cursor) + "\n")
	}

	b.WriteString("\n")
	plotW := m.width - 16
	if plotW > 90 {
		plotW = 90
	}
	b.WriteString(indent(viz.Plot(m.core.plotValues(), m.core.plot, plotW, 10), "  "))
	b.WriteString("\n")

	if m.core.out != nil {
		b.WriteString("  " + viz.Dim.Render(viz.TransitionsLine(m.core.out.Trans)) + "\n")
		b.WriteString(fmt.Sprintf("  %s %s   %s %s pc   %s %s km/s\n",
			viz.Dim.Render("phase"), viz.Green.Render(m.core.out.Phase),
			viz.Dim.Render("R"), viz.White.Render(formatValue(m.core.out.ShockRadius)),
			viz.Dim.Render("v"), viz.White.Render(formatValue(m.core.out.ShockVelocity))))
	}
	if m.core.status != "" {
		b.WriteString("  " + viz.Red.Render(m.core.status) + "\n")
	}

	b.WriteString("\n" + viz.Dim.Render("  ↑↓ select  ←→ adjust  enter edit  p plot  r reset  S save  q quit") + "\n")
	return b.String()
}

func (m Model) renderItem(it item, focused bool) string {
	switch it.kind {
	case itemParam:
		row := it.row
		val := formatValue(row.value)
		if m.editing && focused {
			val = m.editBuf + "▋"
		}
		label := fmt.Sprintf("%-18s", row.label)
		value := fmt.Sprintf("%10s %s", val, viz.Dim.Render(row.unit))
		if !row.enabled {
			return viz.Dimmer.Render(label) + viz.Dimmer.Render(fmt.Sprintf("%10s", val))
		}
		if focused {
			return viz.White.Render(label) + viz.Magenta.Render(value)
		}
		return viz.Dim.Render(label) + viz.Dim.Render(value)
	case itemVariant:
		return m.controlLine("model", m.core.engine.Variant().String(), focused)
	case itemWindowMode:
		return m.controlLine("time window", m.core.window.Mode.String(), focused)
	case itemXMin:
		val := formatValue(m.core.window.Min)
		if m.editing && focused {
			val = m.editBuf + "▋"
		}
		return m.controlLine("xmin", val+" yr", focused)
	case itemXMax:
		val := formatValue(m.core.window.Max)
		if m.editing && focused {
			val = m.editBuf + "▋"
		}
		return m.controlLine("xmax", val+" yr", focused)
	case itemPlotKind:
		return m.controlLine("plot", m.core.plot.String(), focused)
	case itemISM:
		return m.controlLine("ISM abundances", m.core.session.Table(abundance.ISM).Mode(), focused)
	case itemEjecta:
		return m.controlLine("ejecta abundances", m.core.session.Table(abundance.Ejecta).Mode(), focused)
	}
	return ""
}

func (m Model) controlLine(label, value string, focused bool) string {
	l := fmt.Sprintf("%-18s", label)
	v := fmt.Sprintf("%10s", value)
	if focused {
		return viz.White.Render(l) + viz.Yellow.Render(v)
	}
	return viz.Dim.Render(l) + viz.Dim.Render(v)
}

func (m Model) viewAbundance() string {
	var b strings.Builder

	kind := m.ed.Kind()
	b.WriteString(viz.Cyan.Render(kind.String()+" abundances") + "  " + viz.Dim.Render("log(X/H)+12") + "\n")
	b.WriteString(viz.Yellow.Render("preset: "+m.ed.Mode()) + viz.Dim.Render("  (←→ cycle)") + "\n\n")

	for i, el := range abundance.ElementOrder {
		val := formatValue(m.ed.Value(el))
		if m.abEdit && i == m.abCursor {
			val = m.abBuf + "▋"
		}
		line := fmt.Sprintf("%-10s %8s", abundance.ElementNames[el], val)
		if i == m.abCursor {
			b.WriteString(viz.Cyan.Render("▸ ") + viz.White.Render(line) + "\n")
		} else {
			b.WriteString("  " + viz.Dim.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + viz.Dim.Render("enter edit  ←→ preset  q save+close  esc discard") + "\n")
	return viz.OverlayPanel.Render(b.String())
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	if math.IsInf(v, 0) {
		return "--"
	}
	return strconv.FormatFloat(v, 'g', 5, 64)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// Run starts the interactive explorer. Sessions saved from the panel land
// in dataDir.
func Run(cfg *config.Config, dataDir string) error {
	m := NewApp(cfg)
	if dataDir != "" {
		m.dataDir = dataDir
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
