package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/atomcloud/internal/cloud"
	"github.com/san-kum/atomcloud/internal/config"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps the cloud on a frame tick and renders it to a braille
// canvas with a stats sidebar.
type Model struct {
	cloud      *cloud.Cloud
	cfg        *config.Config
	canvas     *Canvas
	camera     *Camera
	t          float64
	seed       int64
	running    bool
	showAxes   bool
	showHelp   bool
	energyHist []float64
}

func NewModel(cfg *config.Config) Model {
	return Model{
		cloud:      cloud.New(cfg.Atoms, cfg.Seed),
		cfg:        cfg,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		camera:     NewCamera(),
		seed:       cfg.Seed,
		running:    true,
		energyHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset(m.seed)
		case "n":
			m.reset(m.seed + 1)
		case "a":
			m.showAxes = !m.showAxes
		case "?":
			m.showHelp = !m.showHelp
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.cloud.Step(float32(m.cfg.Dt))
	m.t += m.cfg.Dt

	m.energyHist = append(m.energyHist, m.cloud.KineticEnergy())
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
}

func (m *Model) reset(seed int64) {
	m.seed = seed
	m.cloud = cloud.New(m.cfg.Atoms, seed)
	m.t = 0
	m.energyHist = m.energyHist[:0]
}

func (m Model) View() string {
	m.canvas.Clear()
	if m.showAxes {
		RenderAxes(m.canvas, m.camera, 1.0)
	}
	RenderCloud(m.canvas, m.cloud.Positions(), m.camera)

	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("ATOMCLOUD") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Kinetic Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	centroid := m.cloud.Centroid()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Atoms") + valueStyle.Render(fmt.Sprintf("%d", m.cloud.Len())) + "\n")
	s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", m.seed)) + "\n")
	s.WriteString(labelStyle.Render("Centroid") + valueStyle.Render(fmt.Sprintf("(%.3f, %.3f, %.3f)", centroid.X(), centroid.Y(), centroid.Z())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", m.cloud.KineticEnergy())) + "\n")
	if !m.cloud.Valid() {
		s.WriteString(labelStyle.Render("State") + valueStyle.Render("DEGENERATE (NaN)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset N:Reseed Q:Quit\nX/Y/Z:Rotate +/-:Zoom A:Axes ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset (same seed)        ║
║  N        - Reset with next seed     ║
║  X/Y/Z    - Rotate camera (shift:-)  ║
║  + / -    - Zoom in / out            ║
║  A        - Toggle axes              ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive starts the interactive terminal view and blocks until quit.
func RunLive(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
