package viz

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/frame"
	"github.com/san-kum/constellation/internal/globe"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/scene"
)

const (
	historyCapacity = 120
	rotateStep      = 0.15
	dollyStep       = 1.1
	// cellPixels converts a column to the pointer units the globe spin
	// expects.
	cellPixels = 8
	globeCols  = 18
	globeRows  = 9
)

// FrameMsg carries a display refresh into the model.
type FrameMsg time.Time

// Host is the terminal side of a frame.Driver: its scheduler, its input
// surface and its backend. Build the driver from these, then hand both to
// NewModel.
type Host struct {
	Scheduler *frame.ManualScheduler
	Surface   *frame.ManualSurface
	Backend   *TermBackend
}

// NewHost returns a host with a cols by rows canvas. The surface works in
// braille sub-pixels so the camera aspect matches what is drawn.
func NewHost(cols, rows int) *Host {
	b := NewTermBackend(cols, rows)
	w, h := b.Canvas.Pixels()
	return &Host{
		Scheduler: frame.NewManualScheduler(),
		Surface:   frame.NewManualSurface(float64(w), float64(h)),
		Backend:   b,
	}
}

// Options configures the live model.
type Options struct {
	FPS   int
	Title string
	Theme string
	// Globe is drawn in the side panel when set.
	Globe *globe.Ornament
	// Snapshot is bound to the s key; it returns where the frame was written.
	Snapshot func(s *scene.Scene, cam *camera.Camera) (string, error)
	Logger   *slog.Logger
}

// Model is the bubbletea program around a frame.Driver.
type Model struct {
	host     *Host
	driver   *frame.Driver
	interval time.Duration
	title    string
	theme    Theme
	log      *slog.Logger

	orn         *globe.Ornament
	globeCanvas *Canvas
	showGlobe   bool
	dragging    bool

	snapshot func(*scene.Scene, *camera.Camera) (string, error)

	width, height int
	paused        bool
	stopped       bool
	help          help.Model
	status        string
	edgeHistory   []float64
}

// NewModel returns a model driving d through host.
func NewModel(host *Host, d *frame.Driver, opts Options) *Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Model{
		host:        host,
		driver:      d,
		interval:    time.Second / time.Duration(fps),
		title:       opts.Title,
		theme:       GetTheme(opts.Theme),
		log:         logger,
		orn:         opts.Globe,
		showGlobe:   opts.Globe != nil,
		snapshot:    opts.Snapshot,
		help:        help.New(),
		edgeHistory: make([]float64, 0, historyCapacity),
	}
	m.help.Width = panelWidth - 4
	if m.orn != nil {
		m.globeCanvas = NewCanvas(globeCols, globeRows)
	}
	if m.title == "" {
		m.title = "constellation"
	}
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// Init starts the driver on the host surface and schedules the first frame.
func (m *Model) Init() tea.Cmd {
	m.driver.Start(m.host.Surface, time.Now())
	return m.tick()
}

// Update routes terminal input to the surface and orbit, and fires frames.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case FrameMsg:
		return m, m.frame(time.Time(msg))
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	orbit := m.driver.Orbit()
	switch {
	case key.Matches(msg, keys.Quit):
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Theme):
		m.theme = NextTheme(m.theme.Name)
	case key.Matches(msg, keys.Globe):
		m.showGlobe = !m.showGlobe && m.orn != nil
	case key.Matches(msg, keys.Snapshot):
		m.takeSnapshot()
	case key.Matches(msg, keys.Clear):
		m.driver.Resolver().Reset(m.driver.Scene())
	case orbit == nil:
	case key.Matches(msg, keys.Left):
		orbit.Rotate(-rotateStep, 0)
	case key.Matches(msg, keys.Right):
		orbit.Rotate(rotateStep, 0)
	case key.Matches(msg, keys.Up):
		orbit.Rotate(0, -rotateStep)
	case key.Matches(msg, keys.Down):
		orbit.Rotate(0, rotateStep)
	case key.Matches(msg, keys.In):
		orbit.Dolly(1 / dollyStep)
	case key.Matches(msg, keys.Out):
		orbit.Dolly(dollyStep)
	}
	return m, nil
}

// resize gives the canvas every cell the panel does not use and reports the
// new sub-pixel viewport to the driver.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := max(w-chrome, 10)
	rows := max(h-2*canvasTop, 5)
	m.host.Backend.Resize(cols, rows)
	pw, ph := m.host.Backend.Canvas.Pixels()
	m.host.Surface.Resize(float64(pw), float64(ph))
}

// handleMouse converts cell coordinates to canvas sub-pixels. Input over
// the side panel spins the globe instead of picking.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	c := m.host.Backend.Canvas
	panelX := canvasLeft*2 + c.Width

	if m.dragging || (m.showGlobe && msg.X >= panelX) {
		m.handleGlobeMouse(msg)
		return
	}

	px := float64((msg.X-canvasLeft)*2 + 1)
	py := float64((msg.Y-canvasTop)*4 + 2)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.host.Surface.Move(px, py)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.host.Surface.Click(px, py)
		case tea.MouseButtonWheelUp:
			if o := m.driver.Orbit(); o != nil {
				o.Dolly(1 / dollyStep)
			}
		case tea.MouseButtonWheelDown:
			if o := m.driver.Orbit(); o != nil {
				o.Dolly(dollyStep)
			}
		}
	}
}

func (m *Model) handleGlobeMouse(msg tea.MouseMsg) {
	if m.orn == nil {
		return
	}
	x := float64(msg.X * cellPixels)
	spin := m.orn.Spin
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			spin.Grab(x)
			m.dragging = true
		}
	case tea.MouseActionMotion:
		spin.Drag(x)
	case tea.MouseActionRelease:
		spin.Release()
		m.dragging = false
	}
}

// frame fires the driver's pending callback and schedules the next refresh
// while the loop is alive.
func (m *Model) frame(now time.Time) tea.Cmd {
	if m.stopped {
		return nil
	}
	if !m.paused {
		m.host.Scheduler.Fire(now)
		if m.orn != nil {
			m.orn.Spin.Advance()
		}
		m.recordEdges()
	}
	if err := m.driver.Err(); err != nil {
		m.stopped = true
		m.status = err.Error()
		return nil
	}
	if !m.driver.Running() {
		m.stopped = true
		return nil
	}
	return m.tick()
}

func (m *Model) recordEdges() {
	segs := m.driver.Segments()
	if len(segs) == 0 {
		return
	}
	m.edgeHistory = append(m.edgeHistory, metrics.MeanLength(segs))
	if len(m.edgeHistory) > historyCapacity {
		m.edgeHistory = m.edgeHistory[1:]
	}
}

func (m *Model) takeSnapshot() {
	if m.snapshot == nil {
		m.status = "snapshots disabled"
		return
	}
	path, err := m.snapshot(m.driver.Scene(), m.driver.Camera())
	if err != nil {
		m.log.Warn("snapshot failed", "error", err)
		m.status = "snapshot: " + err.Error()
		return
	}
	m.log.Info("snapshot written", "path", path)
	m.status = "saved " + path
}

func (m *Model) quit() {
	if err := m.driver.Teardown(); err != nil {
		m.log.Warn("teardown", "error", err)
	}
	m.stopped = true
}

// Stopped reports whether the frame loop has ended.
func (m *Model) Stopped() bool { return m.stopped }

// Status returns the last status line.
func (m *Model) Status() string { return m.status }

// HelpExpanded reports whether the full key help is shown.
func (m *Model) HelpExpanded() bool { return m.help.ShowAll }

// Theme returns the active theme.
func (m *Model) Theme() Theme { return m.theme }

// EdgeHistory returns the recorded mean edge lengths, oldest first.
func (m *Model) EdgeHistory() []float64 { return m.edgeHistory }

// View renders the canvas and the side panel.
func (m *Model) View() string {
	if m.driver.Scene().Released() {
		return ""
	}
	canvasView := canvasStyle.Render(m.host.Backend.Canvas.Render(m.theme))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(m.panel()))
}

func (m *Model) panel() string {
	t := m.theme
	val := valueStyle(t)
	row := func(label, value string) string {
		return labelStyle.Render(label) + val.Render(value) + "\n"
	}

	var s strings.Builder
	s.WriteString(headerStyle(t).Render(strings.ToUpper(m.title)) + "\n")

	status := "RUNNING"
	switch {
	case m.driver.Err() != nil:
		status = errorStyle(t).Render("STOPPED")
	case m.stopped:
		status = "STOPPED"
	case m.paused:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	sc := m.driver.Scene()
	s.WriteString(row("Nodes", fmt.Sprintf("%d", sc.Len())))
	s.WriteString(row("Edges", fmt.Sprintf("%d", sc.EdgeCount())))
	s.WriteString(row("Segments", fmt.Sprintf("%d", len(m.driver.Segments()))))
	s.WriteString(row("Ticks", fmt.Sprintf("%d", m.driver.Ticks())))
	if sc.Bound > 0 {
		spread := metrics.Radius(sc) / sc.Bound
		s.WriteString(labelStyle.Render("Spread") + ProgressBar(spread, 16, t) + "\n")
	}

	s.WriteString("\n")
	if idx, ok := m.driver.Resolver().State().Index(); ok && idx < sc.Len() {
		p := sc.Nodes[idx].Payload
		title := p.Title
		if title == "" {
			title = fmt.Sprintf("node %d", idx)
		}
		s.WriteString(accentStyle(t).Render(title) + "\n")
		if p.Date != "" {
			s.WriteString(val.Render(p.Date) + "\n")
		}
		if p.HasDestination() {
			s.WriteString(labelStyle.Render("click") + val.Render(p.Destination) + "\n")
		}
	} else {
		s.WriteString(labelStyle.Render("hover a node") + "\n")
	}
	s.WriteString(row("Cursor", string(m.driver.Resolver().Cursor())))

	if len(m.edgeHistory) > 1 {
		chart := asciigraph.Plot(m.edgeHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("mean edge"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.showGlobe && m.orn != nil {
		DrawGlobe(m.globeCanvas, m.orn)
		s.WriteString("\n" + m.globeCanvas.Render(t) + "\n")
		s.WriteString(val.Render(fmt.Sprintf("%s → %s  %s", m.orn.From.Name, m.orn.To.Name, m.orn.Label)) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + val.Render(m.status) + "\n")
	}
	s.WriteString(Separator(panelWidth-6, t) + "\n" + helpStyle.Render(m.help.View(keys)))
	return s.String()
}

// Run starts the program on the alternate screen with mouse motion events.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
