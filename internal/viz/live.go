package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gearsim/internal/assembly"
	"github.com/san-kum/gearsim/internal/shape"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 240
	frameInterval   = time.Second / 60
	margin          = 2.0
)

type TickMsg time.Time

// Model drives an assembly from frame ticks and terminal mouse motion. The
// clock stream only advances while running; pointer samples carry wall time
// since start, since the engine keeps the two timelines apart.
type Model struct {
	asm          *assembly.Assembly
	title        string
	canvas       *Canvas
	view         View
	theme        Theme
	start        time.Time
	lastWall     time.Time
	clock        float64
	running      bool
	showHelp     bool
	speedHistory []float64
	now          func() time.Time
}

func NewModel(a *assembly.Assembly, title string) Model {
	c := NewCanvas(width, height)
	pw, ph := c.Pixels()
	return Model{
		asm:          a,
		title:        title,
		canvas:       c,
		view:         Fit(a.Scene.Bounds(), pw, ph, margin),
		theme:        ThemeBrass,
		running:      true,
		speedHistory: make([]float64, 0, historyCapacity),
		now:          time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and feeds the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if m.running {
			m.pointer(msg.X, msg.Y)
		}
	case TickMsg:
		m.advance(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance(now time.Time) {
	if m.start.IsZero() {
		m.start = now
	}
	if m.running && !m.lastWall.IsZero() {
		m.clock += float64(now.Sub(m.lastWall)) / float64(time.Millisecond)
	}
	m.lastWall = now
	if !m.running {
		return
	}

	m.asm.Tick(m.clock)
	if len(m.speedHistory) == historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
	m.speedHistory = append(m.speedHistory, m.asm.Engine.Speed())
}

func (m *Model) pointer(x, y int) {
	now := m.now()
	if m.start.IsZero() {
		m.start = now
	}
	p := m.view.CellToLocal(x-canvasPadLeft, y-canvasPadTop)
	m.asm.Pointer(p, float64(now.Sub(m.start))/float64(time.Millisecond))
}

func (m Model) draw() {
	m.canvas.Clear()
	for _, g := range m.asm.Gears {
		gr, ok := m.asm.Set.Get(g.Handle)
		if !ok {
			continue
		}
		rot := g.Element.Rotation()
		pts := shape.Outline(gr.Center, gr.Radius, gr.Teeth, rot)
		xs := make([]int, len(pts))
		ys := make([]int, len(pts))
		for i, p := range pts {
			xs[i], ys[i] = m.view.ToCanvas(p)
		}
		m.canvas.DrawPolyline(xs, ys)

		cx, cy := m.view.ToCanvas(gr.Center)
		sx, sy := m.view.ToCanvas(shape.Spoke(gr.Center, gr.Radius*0.6, rot))
		m.canvas.DrawLine(cx, cy, sx, sy)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.showHelp {
		return helpView()
	}

	m.draw()
	gearStyle := lipgloss.NewStyle().Foreground(m.theme.Gear)
	canvasView := canvasStyle.Render(gearStyle.Render(m.canvas.String()))

	snap := m.asm.Engine.Snapshot()
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	switch {
	case !m.running:
		s.WriteString(pausedStyle.Render("PAUSED"))
	case snap.Engaged:
		s.WriteString(draggingStyle.Render("DRAGGING"))
	default:
		s.WriteString(runningStyle.Render("RUNNING"))
	}
	s.WriteString("\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("speed (deg/ms)"))
		s.WriteString(graphStyle.Foreground(m.theme.Graph).Render(chart) + "\n\n")
	}

	p := m.asm.Engine.Params()
	hovered := m.asm.HoveredID()
	if hovered == "" {
		hovered = "-"
	}
	rows := [][2]string{
		{"Time", fmt.Sprintf("%.1fs", m.clock/1000)},
		{"Speed", fmt.Sprintf("%+.3f deg/ms", snap.Speed)},
		{"Base", fmt.Sprintf("%+.3f deg/ms", p.BaseSpeed)},
		{"Angle", fmt.Sprintf("%.1f deg", snap.Angle)},
		{"Hovered", hovered},
		{"Gears", fmt.Sprintf("%d", len(m.asm.Gears))},
		{"Theme", m.theme.Name},
	}
	for _, r := range rows {
		vs := valueStyle
		if r[0] == "Hovered" && hovered != "-" {
			vs = vs.Foreground(m.theme.Hovered)
		}
		s.WriteString(labelStyle.Render(r[0]) + vs.Render(r[1]) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause T:Theme\n?:Help   Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func helpView() string {
	return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume the clock   ║
║  T        - Cycle color themes       ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
║                                      ║
║  Sweep the mouse around a gear to    ║
║  drag the train with it.             ║
╚══════════════════════════════════════╝
`
}

// Run starts the live terminal view and blocks until the user quits.
func Run(a *assembly.Assembly, title string) error {
	p := tea.NewProgram(NewModel(a, title), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
