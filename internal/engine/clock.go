package engine

import (
	"log/slog"
	"sync"
	"time"
)

// Speed is the clock state: paused, or playing at a multiplier.
type Speed uint8

const (
	SpeedPaused Speed = iota
	Speed1x
	Speed2x // "fast"
	Speed4x // "fastest"
)

// Multiplier returns how many base intervals fit in one tick period.
func (s Speed) Multiplier() int {
	switch s {
	case Speed1x:
		return 1
	case Speed2x:
		return 2
	case Speed4x:
		return 4
	default:
		return 0
	}
}

// Playing reports whether ticks should be emitted.
func (s Speed) Playing() bool {
	return s != SpeedPaused
}

// Valid reports whether s is a defined speed.
func (s Speed) Valid() bool {
	return s <= Speed4x
}

// String returns the snapshot label for the speed.
func (s Speed) String() string {
	switch s {
	case SpeedPaused:
		return "paused"
	case Speed1x:
		return "1x"
	case Speed2x:
		return "fast"
	case Speed4x:
		return "fastest"
	default:
		return "unknown"
	}
}

// Scheduler is the single clock authority. One mutex serializes ticks
// and player commands, so a command either completes before the next
// tick or runs strictly between ticks — never mid-tick. Pausing or
// changing speed cancels only the next scheduled tick; a tick already
// executing always finishes.
type Scheduler struct {
	mu    sync.Mutex
	game  *Game
	base  time.Duration // 1x tick cadence
	timer *time.Timer
	subs  []func(Snapshot)
	gen   uint64 // invalidates stale timer fires after cancel/replace
}

// NewScheduler wraps a game with a real-time tick driver. The game
// starts paused; nothing fires until SetSpeed.
func NewScheduler(g *Game, base time.Duration) *Scheduler {
	return &Scheduler{game: g, base: base}
}

// Subscribe registers a snapshot consumer. Subscribers are invoked
// after every settled tick or command, on the scheduler goroutine.
func (s *Scheduler) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Game runs fn against the game under the scheduler lock, then
// publishes a snapshot. All command traffic goes through here.
func (s *Scheduler) Do(fn func(*Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.game)
	s.publishLocked()
	return err
}

// View returns a snapshot of the current settled state.
func (s *Scheduler) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

// SetSpeed transitions the clock. Pausing always succeeds; entering a
// playing state is rejected while a panel is active or the session
// has ended. Returns the speed actually in effect.
func (s *Scheduler) SetSpeed(sp Speed) (Speed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sp.Valid() {
		return s.game.Speed, rejectf(ReasonBadSpeed, "unknown speed %d", sp)
	}
	if sp.Playing() {
		if s.game.Over() {
			return s.game.Speed, rejectf(ReasonGameOver, "the session has ended")
		}
		if !s.game.Panel.None() {
			return s.game.Speed, rejectf(ReasonPanelActive, "a %s panel is awaiting resolution", s.game.Panel.Kind)
		}
	}

	s.game.Speed = sp
	s.cancelLocked()
	if sp.Playing() {
		s.scheduleLocked()
	}
	slog.Info("speed change", "speed", sp.String())
	return sp, nil
}

// Replace swaps in a different game (a freshly loaded session). The
// new session starts paused.
func (s *Scheduler) Replace(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	g.Speed = SpeedPaused
	s.game = g
	s.publishLocked()
}

// Stop cancels any scheduled tick. Used at shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Speed = SpeedPaused
	s.cancelLocked()
}

func (s *Scheduler) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) scheduleLocked() {
	interval := s.base / time.Duration(s.game.Speed.Multiplier())
	gen := s.gen
	s.timer = time.AfterFunc(interval, func() {
		s.fire(gen)
	})
}

// fire runs one tick. A panel surfaced by the tick drops the clock to
// paused before anything else can be scheduled, so ticks never pile
// up behind a stop condition.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || !s.game.Speed.Playing() {
		return
	}

	s.game.Step()
	s.publishLocked()

	if s.game.Speed.Playing() && s.game.Panel.None() {
		s.scheduleLocked()
	}
}

func (s *Scheduler) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.game.Snapshot()
	for _, fn := range s.subs {
		fn(snap)
	}
}
