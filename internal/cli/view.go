package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/grid"
	"github.com/matzehuels/glyphgrid/pkg/interact"
	gridio "github.com/matzehuels/glyphgrid/pkg/io"
	"github.com/matzehuels/glyphgrid/pkg/render/canvas"
	"github.com/matzehuels/glyphgrid/pkg/render/sink"
)

// Viewer zoom limits and step. The controller itself accepts any scale.
const (
	zoomStep = 1.25
	minZoom  = 0.25
	maxZoom  = 8
)

// Pointer ids of the two input sources that drive the controller.
const (
	mousePointer = 0
	keyPointer   = 1
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var gf gridFlags

	cmd := &cobra.Command{
		Use:   "view [grid.toml]",
		Short: "Pan and zoom a grid in the terminal",
		Long: `Pan and zoom a grid in the terminal.

Drag with the mouse or use the arrow keys to pan. Use + and - (or the mouse
wheel) to zoom, 0 to reset the view and q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := gf.load(cmd, args)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newViewModel(spec),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			_, err = p.Run()
			return err
		},
	}

	gf.register(cmd)
	return cmd
}

// viewModel is the bubbletea model of the viewer. Mouse positions are
// converted from terminal cells to logical units before reaching the
// controller, so the pan offset is in the same units as the layout.
type viewModel struct {
	spec          gridio.Spec
	ctrl          *interact.Controller
	charW, charH  float64
	width, height int
}

func newViewModel(spec gridio.Spec) *viewModel {
	m := &viewModel{
		spec:   spec,
		ctrl:   interact.NewController(nil),
		charW:  spec.CellWidth / 6,
		charH:  spec.CellHeight / 3,
		width:  80,
		height: 24,
	}
	m.ctrl.SetScale(spec.EffectiveScale())
	return m
}

func (m *viewModel) Init() tea.Cmd { return nil }

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.zoom(zoomStep)
		case "-", "_":
			m.zoom(1 / zoomStep)
		case "0":
			m.ctrl.Reset()
			m.ctrl.SetScale(m.spec.EffectiveScale())
		case "left", "h":
			m.pan(-1, 0)
		case "right", "l":
			m.pan(1, 0)
		case "up", "k":
			m.pan(0, -1)
		case "down", "j":
			m.pan(0, 1)
		}
	}
	return m, nil
}

func (m *viewModel) mouse(msg tea.MouseMsg) {
	p := interact.Pointer{ID: mousePointer, X: float64(msg.X) * m.charW, Y: float64(msg.Y) * m.charH}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.zoom(zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.zoom(1 / zoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.ctrl.PointerDown(p)
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.PointerMove(p)
	case msg.Action == tea.MouseActionRelease:
		m.ctrl.PointerUp(p)
	}
}

// pan moves the view by one cell as a single-step drag. It is ignored
// while the mouse is dragging.
func (m *viewModel) pan(dx, dy float64) {
	if m.ctrl.State() == interact.Dragging {
		return
	}
	t := m.ctrl.Transform()
	dx *= m.spec.CellWidth * t.Scale
	dy *= m.spec.CellHeight * t.Scale
	m.ctrl.PointerDown(interact.Pointer{ID: keyPointer})
	m.ctrl.PointerMove(interact.Pointer{ID: keyPointer, X: dx, Y: dy})
	m.ctrl.PointerUp(interact.Pointer{ID: keyPointer, X: dx, Y: dy})
}

func (m *viewModel) zoom(factor float64) {
	s := m.ctrl.Transform().Scale * factor
	m.ctrl.SetScale(min(max(s, minZoom), maxZoom))
}

func (m *viewModel) View() string {
	t := m.ctrl.Transform()
	l := grid.Compute(m.spec.Config, m.spec.Empty, m.spec.Highlight, t.Scale)

	rows := max(m.height-1, 1)
	s := sink.NewTextSurface(
		sink.WithCharSize(m.charW, m.charH),
		sink.WithViewport(max(m.width, 1), rows),
		sink.WithTextTransform(t),
	)
	canvas.Paint(s, l)

	var b strings.Builder
	for _, row := range s.Cells() {
		b.WriteString(styleRow(row))
		b.WriteString("\n")
	}
	b.WriteString(m.status())
	return b.String()
}

// styleRow colours a row of the text buffer, one style run at a time.
func styleRow(row []sink.TextCell) string {
	var b, run strings.Builder
	kind := sink.TextBlank
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(styleFor(kind).Render(run.String()))
		run.Reset()
	}
	for _, cell := range row {
		if cell.Kind != kind {
			flush()
			kind = cell.Kind
		}
		run.WriteRune(cell.Rune)
	}
	flush()
	return b.String()
}

func styleFor(k sink.TextKind) lipgloss.Style {
	switch k {
	case sink.TextBorder:
		return styleBorder
	case sink.TextGlyph:
		return styleGlyph
	case sink.TextAccent:
		return styleAccent
	}
	return lipgloss.NewStyle()
}

func (m *viewModel) status() string {
	t := m.ctrl.Transform()
	parts := []string{
		StyleNumber.Render(fmt.Sprintf("×%s", num(t.Scale))),
		fmt.Sprintf("offset %s, %s", num(t.OffsetX), num(t.OffsetY)),
		m.ctrl.State().String(),
		"drag/arrows pan · +/- zoom · 0 reset · q quit",
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}
