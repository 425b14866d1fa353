package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carpetrun/internal/audio"
	"github.com/vovakirdan/carpetrun/internal/carpet"
	"github.com/vovakirdan/carpetrun/internal/core"
)

// DefaultKeyHold is how long a direction stays held after its last press.
const DefaultKeyHold = 300 * time.Millisecond

// Options configures a game session in the terminal.
type Options struct {
	Params         carpet.Params
	Runtime        core.RuntimeConfig
	SimInterval    time.Duration
	MotionInterval time.Duration
	KeyHold        time.Duration
	Color          bool
	ScreenshotDir  string
	Music          audio.Player // nil means silence
	Logger         *log.Logger  // nil discards logs
}

// Model is the Bubble Tea model that hosts one carpet game.
type Model struct {
	game   *carpet.Game
	screen *core.Screen
	config core.RuntimeConfig
	opts   Options

	keys KeyMap
	help help.Model
	hold *HoldTracker

	music        audio.Player
	musicStarted bool
	logger       *log.Logger
	now          func() time.Time

	fixedSeed bool
	quitting  bool
}

// NewModel creates the model and starts the first run.
func NewModel(opts Options) Model {
	if opts.SimInterval <= 0 {
		opts.SimInterval = carpet.DefaultSimInterval
	}
	if opts.MotionInterval <= 0 {
		opts.MotionInterval = carpet.DefaultMotionInterval
	}
	if opts.KeyHold <= 0 {
		opts.KeyHold = DefaultKeyHold
	}
	if opts.Music == nil {
		opts.Music = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	cfg := opts.Runtime
	fixedSeed := cfg.Seed != 0
	// Use time-based seed if not specified
	if !fixedSeed {
		cfg.Seed = time.Now().UnixNano()
	}

	game := carpet.New(opts.Params)
	game.Reset(cfg)
	opts.Logger.Info("Run started", "seed", cfg.Seed)

	h := help.New()
	h.ShowAll = false

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		config:    cfg,
		opts:      opts,
		keys:      DefaultKeyMap(),
		help:      h,
		hold:      NewHoldTracker(opts.KeyHold),
		music:     opts.Music,
		logger:    opts.Logger,
		now:       time.Now,
		fixedSeed: fixedSeed,
	}
}

// playfieldHeight leaves the last terminal row for the help line.
func playfieldHeight(h int) int {
	return max(h-1, 1)
}

// Init starts both tick loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		simTickCmd(m.opts.SimInterval),
		motionTickCmd(m.opts.MotionInterval),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case SimTickMsg:
		return m.handleSimTick()

	case MotionTickMsg:
		return m.handleMotionTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("Quit", "score", m.game.Session().Score)
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	case core.ActionNone:
		return m, nil
	}

	// Music starts with the first game key.
	if !m.musicStarted && !m.game.Session().GameOver {
		m.music.Play()
		m.musicStarted = true
	}

	switch action {
	case core.ActionUp:
		m.press(carpet.DirUp)
	case core.ActionDown:
		m.press(carpet.DirDown)
	case core.ActionPause:
		m.togglePause()
	case core.ActionRestart:
		if m.game.Session().GameOver {
			m.restart()
		}
	}
	return m, nil
}

func (m *Model) press(d carpet.Direction) {
	m.hold.Press(d, m.now())
	m.syncMotion()
}

// syncMotion copies the held state of both directions into the session.
func (m *Model) syncMotion() {
	now := m.now()
	m.game.SetMoving(carpet.DirUp, m.hold.Held(carpet.DirUp, now))
	m.game.SetMoving(carpet.DirDown, m.hold.Held(carpet.DirDown, now))
}

func (m *Model) togglePause() {
	m.game.TogglePause()
	st := m.game.State()
	if st.Paused {
		m.music.Pause()
		m.logger.Debug("Paused", "score", st.Score)
		return
	}
	if m.musicStarted && !st.GameOver {
		m.music.Play()
	}
	m.logger.Debug("Resumed", "score", st.Score)
}

// restart begins a new run after game over.
func (m *Model) restart() {
	final := m.game.Session().Score
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.hold.ReleaseAll()

	m.music.Rewind()
	if m.musicStarted {
		m.music.Play()
	}
	m.logger.Info("Run reset", "previous_score", final, "seed", m.config.Seed)
}

// handleResize processes window resize events. The world is resolution
// independent, so the run continues at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleSimTick advances the simulation and schedules the next tick.
func (m Model) handleSimTick() (tea.Model, tea.Cmd) {
	res := m.game.SimulationTick()
	s := m.game.Session()

	if res.Spawned {
		o := s.Obstacles[len(s.Obstacles)-1]
		m.logger.Debug("Obstacle spawned", "y", o.Y, "count", len(s.Obstacles))
	}
	if res.Collided {
		m.music.Pause()
		m.logger.Info("Collision", "score", s.Score, "speed", s.Speed, "obstacle", res.HitIndex)
	}

	return m, simTickCmd(m.opts.SimInterval)
}

// handleMotionTick releases expired keys, moves the carpet and schedules the next tick.
func (m Model) handleMotionTick() (tea.Model, tea.Cmd) {
	if !m.game.Session().GameOver {
		m.syncMotion()
	}
	m.game.MotionTick()
	return m, motionTickCmd(m.opts.MotionInterval)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("Screenshot failed", "err", err)
		return
	}

	timestamp := m.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(m.opts.ScreenshotDir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("Screenshot failed", "err", err)
		return
	}
	m.logger.Info("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	frame := m.screen.String()
	if m.opts.Color {
		frame = RenderScreen(m.screen)
	}
	return frame + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()
	if cerr := model.music.Close(); cerr != nil {
		model.logger.Warn("Closing music", "err", cerr)
	}
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
