package tui

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/carpetrun/internal/carpet"
	"github.com/vovakirdan/carpetrun/internal/core"
)

// recordingPlayer records music calls in order.
type recordingPlayer struct {
	calls []string
}

func (r *recordingPlayer) Play()        { r.calls = append(r.calls, "play") }
func (r *recordingPlayer) Pause()       { r.calls = append(r.calls, "pause") }
func (r *recordingPlayer) Rewind()      { r.calls = append(r.calls, "rewind") }
func (r *recordingPlayer) Close() error { r.calls = append(r.calls, "close"); return nil }

type testHarness struct {
	model Model
	music *recordingPlayer
	now   time.Time
	shots string
	t     *testing.T
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		music: &recordingPlayer{},
		now:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		shots: t.TempDir(),
		t:     t,
	}
	h.model = NewModel(Options{
		Params:        carpet.DefaultParams(),
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1},
		KeyHold:       100 * time.Millisecond,
		Music:         h.music,
		ScreenshotDir: h.shots,
	})
	h.model.now = func() time.Time { return h.now }
	return h
}

func (h *testHarness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.model = m
	return cmd
}

func (h *testHarness) session() *carpet.Session {
	return h.model.game.Session()
}

// crash places an obstacle that hits the carpet on the next simulation tick.
func (h *testHarness) crash() {
	s := h.session()
	s.Obstacles = append(s.Obstacles[:0], carpet.Obstacle{X: 120, Y: s.Player.Y + 10, Size: carpet.WeaponSize})
	h.send(SimTickMsg(h.now))
	if !s.GameOver {
		h.t.Fatal("expected game over")
	}
}

func TestTicksReschedule(t *testing.T) {
	h := newHarness(t)

	if cmd := h.send(SimTickMsg(h.now)); cmd == nil {
		t.Error("simulation tick should schedule the next one")
	}
	if cmd := h.send(MotionTickMsg(h.now)); cmd == nil {
		t.Error("motion tick should schedule the next one")
	}
	if h.session().Score != 1 {
		t.Errorf("score = %d, expected 1", h.session().Score)
	}
	if h.model.Init() == nil {
		t.Error("Init should start the tick loops")
	}
}

func TestKeyHoldMovesCarpet(t *testing.T) {
	h := newHarness(t)
	start := h.session().Player.Y

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.send(MotionTickMsg(h.now))
	if got := h.session().Player.Y; got != start+carpet.MoveSpeed {
		t.Fatalf("y = %v after one motion tick, expected %v", got, start+carpet.MoveSpeed)
	}

	h.now = h.now.Add(50 * time.Millisecond)
	h.send(MotionTickMsg(h.now))
	if got := h.session().Player.Y; got != start+2*carpet.MoveSpeed {
		t.Fatalf("y = %v while held, expected %v", got, start+2*carpet.MoveSpeed)
	}

	h.now = h.now.Add(100 * time.Millisecond)
	h.send(MotionTickMsg(h.now))
	if got := h.session().Player.Y; got != start+2*carpet.MoveSpeed {
		t.Errorf("y = %v after release, expected the carpet to stop", got)
	}
	if h.session().MovingDown {
		t.Error("down flag should be cleared after the hold window")
	}
}

func TestOppositeKeyTakesOver(t *testing.T) {
	h := newHarness(t)
	start := h.session().Player.Y

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.send(runes("w"))
	h.send(MotionTickMsg(h.now))

	if got := h.session().Player.Y; got != start-carpet.MoveSpeed {
		t.Errorf("y = %v, expected %v", got, start-carpet.MoveSpeed)
	}
}

func TestPauseStopsTicksAndMusic(t *testing.T) {
	h := newHarness(t)

	h.send(runes("p"))
	h.send(SimTickMsg(h.now))
	if h.session().Score != 0 {
		t.Error("paused game should not score")
	}

	h.send(runes("p"))
	h.send(SimTickMsg(h.now))
	if h.session().Score != 1 {
		t.Errorf("score = %d after resume, expected 1", h.session().Score)
	}

	expected := []string{"play", "pause", "play"}
	if !reflect.DeepEqual(h.music.calls, expected) {
		t.Errorf("music calls = %v, expected %v", h.music.calls, expected)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyUp})
	h.send(runes("r"))
	if h.music.calls[len(h.music.calls)-1] == "rewind" {
		t.Fatal("restart should be ignored while playing")
	}

	h.crash()
	score := h.session().Score

	// Frozen after the crash.
	h.send(SimTickMsg(h.now))
	if h.session().Score != score {
		t.Error("score changed after game over")
	}

	h.send(runes("r"))
	s := h.session()
	if s.GameOver || s.Score != 0 || len(s.Obstacles) != 0 {
		t.Errorf("unexpected session after restart: %+v", s)
	}
	if s.Player.Y != carpet.GameHeight/2 {
		t.Errorf("player y = %v, expected center", s.Player.Y)
	}

	expected := []string{"play", "pause", "rewind", "play"}
	if !reflect.DeepEqual(h.music.calls, expected) {
		t.Errorf("music calls = %v, expected %v", h.music.calls, expected)
	}
}

func TestRestartKeepsFixedSeed(t *testing.T) {
	h := newHarness(t)
	h.crash()
	h.send(runes("r"))

	if h.model.config.Seed != 1 {
		t.Errorf("seed = %d, expected the fixed seed to survive a restart", h.model.config.Seed)
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(runes("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if h.model.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestScreenshot(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})

	path := filepath.Join(h.shots, "carpet_20240501_120000.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.Contains(string(data), "Score: 0") {
		t.Error("screenshot should contain the HUD")
	}
	if len(h.music.calls) != 0 {
		t.Error("screenshot should not start the music")
	}
}

func TestViewAndResize(t *testing.T) {
	h := newHarness(t)

	view := h.model.View()
	if !strings.Contains(view, "Score: 0") {
		t.Error("view should contain the HUD")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should contain the help line")
	}

	h.send(SimTickMsg(h.now))
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})

	if h.model.screen.Width() != 120 || h.model.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", h.model.screen.Width(), h.model.screen.Height())
	}
	if h.session().Score != 1 {
		t.Error("resizing should not restart the run")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawTextColored(0, 0, "Score: 5", core.ColorBrightYellow)
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	if !strings.Contains(out, "Score: 5") || !strings.Contains(out, "plain") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name    string
		color   core.Color
		row     int
		bold    bool
		colored bool
	}{
		{"hud row is bold", core.ColorBrightYellow, 0, true, true},
		{"skyline", core.ColorGray, 5, false, true},
		{"weapons stay bold", core.ColorOrange, 3, true, true},
		{"unused color is plain", core.ColorRed, 2, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := styleFor(tc.color, tc.row)
			if st.GetBold() != tc.bold {
				t.Errorf("bold = %v, expected %v", st.GetBold(), tc.bold)
			}
			_, plain := st.GetForeground().(lipgloss.NoColor)
			if plain == tc.colored {
				t.Errorf("foreground = %v, colored expected %v", st.GetForeground(), tc.colored)
			}
		})
	}
}
