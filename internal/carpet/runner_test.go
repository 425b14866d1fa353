package carpet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// manualTicker fires only when the test sends on its channel.
type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

// manualClock hands out manual tickers keyed by interval.
type manualClock struct {
	mu      sync.Mutex
	tickers map[time.Duration]*manualTicker
	ready   chan struct{}
}

func newManualClock() *manualClock {
	return &manualClock{
		tickers: make(map[time.Duration]*manualTicker),
		ready:   make(chan struct{}, 2),
	}
}

func (c *manualClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	c.tickers[d] = t
	c.ready <- struct{}{}
	return t
}

func (c *manualClock) fire(t *testing.T, d time.Duration) {
	t.Helper()
	c.mu.Lock()
	tk := c.tickers[d]
	c.mu.Unlock()
	if tk == nil {
		t.Fatalf("no ticker for %v", d)
	}
	select {
	case tk.ch <- time.Now():
	case <-time.After(time.Second):
		t.Fatalf("ticker %v not drained", d)
	}
}

func (c *manualClock) waitReady(t *testing.T) {
	t.Helper()
	for i := 0; i < 2; i++ {
		select {
		case <-c.ready:
		case <-time.After(time.Second):
			t.Fatal("runner did not create its tickers")
		}
	}
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

const (
	testSim    = 10 * time.Millisecond
	testMotion = 20 * time.Millisecond
)

func TestRunnerDrivesBothStreams(t *testing.T) {
	clock := newManualClock()
	events := make(chan Event, 16)
	r := NewRunner(NewEngine(DefaultParams(), neverSpawn()), RunnerConfig{
		SimInterval:    testSim,
		MotionInterval: testMotion,
		Clock:          clock,
		Observer:       func(ev Event) { events <- ev },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	clock.waitReady(t)

	for i := 1; i <= 3; i++ {
		clock.fire(t, testSim)
		ev := waitEvent(t, events)
		if ev.Kind != EventSimulation {
			t.Fatalf("event kind = %v, expected simulation", ev.Kind)
		}
		if ev.Snapshot.Score != i || ev.Snapshot.SimTicks != uint64(i) {
			t.Errorf("after %d ticks: score %d, sim ticks %d", i, ev.Snapshot.Score, ev.Snapshot.SimTicks)
		}
	}

	r.SetMoving(DirDown, true)
	clock.fire(t, testMotion)
	ev := waitEvent(t, events)
	if ev.Kind != EventMotion {
		t.Fatalf("event kind = %v, expected motion", ev.Kind)
	}
	if ev.Snapshot.Player.Y != GameHeight/2+MoveSpeed {
		t.Errorf("player y = %v, expected %v", ev.Snapshot.Player.Y, GameHeight/2+MoveSpeed)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, expected context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunnerStopsOnGameOver(t *testing.T) {
	// A narrow world spawns obstacles right on top of the carpet.
	params := DefaultParams()
	params.GameWidth = 140
	rng := &scriptedRand{vals: []float64{0, 360.0 / (GameHeight - WeaponSize)}, fallback: 0.99}

	clock := newManualClock()
	r := NewRunner(NewEngine(params, rng), RunnerConfig{
		SimInterval:    testSim,
		MotionInterval: testMotion,
		Clock:          clock,
		StopOnGameOver: true,
	})

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()
	clock.waitReady(t)
	clock.fire(t, testSim)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, expected nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on game over")
	}

	if snap := r.Snapshot(); !snap.GameOver {
		t.Error("snapshot should report game over")
	}
}

func TestRunnerSnapshotIsCopy(t *testing.T) {
	rng := &scriptedRand{vals: []float64{0, 0}, fallback: 0.99}
	r := NewRunner(NewEngine(DefaultParams(), rng), RunnerConfig{})
	r.StepSimulation()

	snap := r.Snapshot()
	if len(snap.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(snap.Obstacles))
	}
	snap.Obstacles[0].X = -1000
	snap.Score = 42

	again := r.Snapshot()
	if again.Obstacles[0].X != GameWidth || again.Score != 1 {
		t.Error("mutating a snapshot changed the runner's session")
	}
}

func TestRunnerReset(t *testing.T) {
	var got []EventKind
	r := NewRunner(NewEngine(DefaultParams(), neverSpawn()), RunnerConfig{
		Observer: func(ev Event) { got = append(got, ev.Kind) },
	})

	r.StepSimulation()
	r.StepMotion()
	r.Reset()

	snap := r.Snapshot()
	if snap.Score != 0 || snap.SimTicks != 0 || snap.MotionTicks != 0 {
		t.Errorf("counters not reset: %+v", snap)
	}
	expected := []EventKind{EventSimulation, EventMotion, EventReset}
	if len(got) != len(expected) {
		t.Fatalf("events = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("event %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestRunnerConcurrentInput(t *testing.T) {
	r := NewRunner(NewEngine(DefaultParams(), neverSpawn()), RunnerConfig{})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			r.StepSimulation()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			r.StepMotion()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			r.SetMoving(DirUp, i%2 == 0)
			r.SetMoving(DirDown, i%3 == 0)
			_ = r.Snapshot()
		}
	}()
	wg.Wait()

	snap := r.Snapshot()
	if snap.Score != 500 {
		t.Errorf("score = %d, expected 500", snap.Score)
	}
	if snap.Player.Y < 0 || snap.Player.Y > GameHeight-CarpetSize {
		t.Errorf("player y = %v out of bounds", snap.Player.Y)
	}
}

func TestEventKindString(t *testing.T) {
	if EventSimulation.String() != "simulation" || EventMotion.String() != "motion" || EventReset.String() != "reset" {
		t.Error("unexpected event kind names")
	}
	if EventKind(9).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}
