package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/geom"
	"github.com/matzehuels/canvasnap/pkg/scene"
)

// dragCommand creates the interactive drag command.
func (c *CLI) dragCommand() *cobra.Command {
	var flags snapFlags

	cmd := &cobra.Command{
		Use:   "drag [scene]",
		Short: "Drag scene elements in the terminal and watch them snap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(sc.Elements) == 0 {
				printWarning("%s has no elements to drag", args[0])
				return nil
			}
			settings, err := c.settings(cmd, &flags)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			eng := align.New(
				align.WithSettings(settings),
				align.WithKillSwitch(cfg.KillSwitch()),
				align.WithLogger(c.Logger),
			)
			m := newDragModel(sc, args[0], eng, flags.zoom)

			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run drag ui: %w", err)
			}
			if dm, ok := final.(dragModel); ok && dm.saved {
				printSuccess("Saved %s", args[0])
				printFile(args[0])
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// dragModel - Interactive snapping canvas
// =============================================================================

// Drag styles
var (
	dragBorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	dragElementStyle  = lipgloss.NewStyle().Foreground(colorGray)
	dragSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	dragHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	dragStep     = 1.0
	dragBigStep  = 10.0
	dragMinCols  = 20
	dragMinRows  = 8
	dragChrome   = 6 // title, status and help lines plus the border
	dragDefaultW = 80
	dragDefaultH = 24
)

type dragModel struct {
	scene  *scene.Scene
	path   string
	engine *align.Engine
	zoom   float64

	cursor int
	// pointer is the unsnapped position of the selected element: where the
	// user has dragged it to before snapping.
	pointer geom.Point
	result  align.SnapResult

	width, height int
	dirty, saved  bool
	status        string
}

func newDragModel(sc *scene.Scene, path string, eng *align.Engine, zoom float64) dragModel {
	m := dragModel{
		scene:  sc,
		path:   path,
		engine: eng,
		zoom:   zoom,
		width:  dragDefaultW,
		height: dragDefaultH,
	}
	m.selectElement(0)
	return m
}

func (m *dragModel) selected() geom.ElementBounds { return m.scene.Elements[m.cursor] }

func (m *dragModel) selectElement(i int) {
	n := len(m.scene.Elements)
	m.cursor = ((i % n) + n) % n
	el := m.selected()
	m.pointer = geom.Point{X: el.X, Y: el.Y}
	m.result = align.SnapResult{X: el.X, Y: el.Y, Guides: []align.Guide{}}
}

// move drags the selected element by (dx, dy) and snaps it.
func (m *dragModel) move(dx, dy float64) {
	m.pointer.X += dx
	m.pointer.Y += dy

	el := m.selected().At(m.pointer.X, m.pointer.Y)
	m.result = m.engine.CalculateSnap(el, m.scene.Siblings(el.ID), m.scene.Canvas, m.zoom)
	m.scene.Elements[m.cursor].X = m.result.X
	m.scene.Elements[m.cursor].Y = m.result.Y
	m.dirty = true
	m.status = ""
}

func (m dragModel) Init() tea.Cmd {
	return nil
}

func (m dragModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.selectElement(m.cursor + 1)
		case "shift+tab":
			m.selectElement(m.cursor - 1)
		case "left", "h":
			m.move(-dragStep, 0)
		case "right", "l":
			m.move(dragStep, 0)
		case "up", "k":
			m.move(0, -dragStep)
		case "down", "j":
			m.move(0, dragStep)
		case "shift+left", "H":
			m.move(-dragBigStep, 0)
		case "shift+right", "L":
			m.move(dragBigStep, 0)
		case "shift+up", "K":
			m.move(0, -dragBigStep)
		case "shift+down", "J":
			m.move(0, dragBigStep)
		case "g":
			m.engine.SetShowGrid(!m.engine.Settings().ShowGrid)
			m.status = fmt.Sprintf("grid %s", onOff(m.engine.Settings().ShowGrid))
		case "r":
			m.engine.Reset()
			m.status = "snap memory cleared"
		case "s":
			if err := scene.WriteFile(m.scene, m.path); err != nil {
				m.status = "save failed: " + err.Error()
				break
			}
			m.dirty, m.saved = false, true
			m.status = "saved"
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m dragModel) View() string {
	var b strings.Builder

	title := StyleTitle.Render("canvasnap drag") + " " + StyleDim.Render(m.path)
	if m.dirty {
		title += StyleWarning.Render(" *")
	}
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(dragBorderStyle.Render(m.renderCanvas()))
	b.WriteString("\n")

	el := m.selected()
	line := fmt.Sprintf("%s %s", StyleValue.Render(el.ID), StyleNumber.Render(formatPoint(el.X, el.Y)))
	if m.result.Snapped {
		ids := make([]string, len(m.result.Guides))
		for i, g := range m.result.Guides {
			ids[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Render(g.ID)
		}
		line += " " + StyleSuccess.Render("snapped") + " " + strings.Join(ids, " ")
	}
	if m.status != "" {
		line += "  " + StyleDim.Render(m.status)
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(dragHelpStyle.Render("arrows move  shift+arrows ×10  tab select  g grid  r reset  s save  q quit"))

	return b.String()
}

// renderCanvas draws elements as boxes of their initial letter and guides as
// lines, scaled to the terminal.
func (m dragModel) renderCanvas() string {
	if cv := m.scene.Canvas; !cv.Valid() || cv.Width <= 0 || cv.Height <= 0 {
		return StyleWarning.Render("canvas has no usable size")
	}
	cols := max(m.width-2, dragMinCols)
	rows := max(m.height-dragChrome, dragMinRows)
	sx := m.scene.Canvas.Width / float64(cols)
	sy := m.scene.Canvas.Height / float64(rows)

	grid := make([][]rune, rows)
	style := make([][]lipgloss.Style, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		style[r] = make([]lipgloss.Style, cols)
		for c := range style[r] {
			style[r][c] = StyleDim
		}
	}
	set := func(r, c int, ch rune, st lipgloss.Style) {
		if r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = ch
			style[r][c] = st
		}
	}
	cell := func(v, scale float64) int { return int(math.Floor(v / scale)) }

	for i, el := range m.scene.Elements {
		st, ch := dragElementStyle, '░'
		if i == m.cursor {
			st, ch = dragSelectedStyle, '█'
		}
		r0, r1 := cell(el.Top(), sy), max(cell(el.Bottom(), sy)-1, cell(el.Top(), sy))
		c0, c1 := cell(el.Left(), sx), max(cell(el.Right(), sx)-1, cell(el.Left(), sx))
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				set(r, c, ch, st)
			}
		}
		if label := []rune(el.ID); len(label) > 0 {
			set(r0, c0, label[0], st)
		}
	}

	for _, g := range m.result.Guides {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color))
		if g.Type == align.Vertical {
			c := cell(g.Position, sx)
			for r := 0; r < rows; r++ {
				set(r, c, '│', st)
			}
		} else {
			r := cell(g.Position, sy)
			for c := 0; c < cols; c++ {
				set(r, c, '─', st)
			}
		}
	}

	lines := make([]string, rows)
	for r := range grid {
		var line strings.Builder
		for c, ch := range grid[r] {
			line.WriteString(style[r][c].Render(string(ch)))
		}
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
