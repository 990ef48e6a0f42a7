package engine

import (
	"testing"
	"time"

	"github.com/talgya/farmstead/internal/config"
	"github.com/talgya/farmstead/internal/farm"
)

func TestSpeedTable(t *testing.T) {
	tests := []struct {
		speed      Speed
		multiplier int
		playing    bool
		label      string
	}{
		{SpeedPaused, 0, false, "paused"},
		{Speed1x, 1, true, "1x"},
		{Speed2x, 2, true, "fast"},
		{Speed4x, 4, true, "fastest"},
	}

	for _, tt := range tests {
		if got := tt.speed.Multiplier(); got != tt.multiplier {
			t.Errorf("%v multiplier = %d, want %d", tt.speed, got, tt.multiplier)
		}
		if got := tt.speed.Playing(); got != tt.playing {
			t.Errorf("%v playing = %v, want %v", tt.speed, got, tt.playing)
		}
		if got := tt.speed.String(); got != tt.label {
			t.Errorf("%v label = %q, want %q", tt.speed, got, tt.label)
		}
		if !tt.speed.Valid() {
			t.Errorf("%v not valid", tt.speed)
		}
	}
	if Speed(9).Valid() {
		t.Error("Speed(9) reported valid")
	}
}

func TestSetSpeedWhilePanelActive(t *testing.T) {
	sched := NewScheduler(newTestGame(t, 1), time.Hour)
	defer sched.Stop()

	if err := sched.Do(func(g *Game) error {
		g.PendingThresholds = []ThresholdNotice{{Kind: ThresholdWaterStress}}
		g.surfacePanel()
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	got, err := sched.SetSpeed(Speed1x)
	if Reason(err) != ReasonPanelActive {
		t.Errorf("play with panel: reason = %q", Reason(err))
	}
	if got != SpeedPaused {
		t.Errorf("effective speed = %v, want paused", got)
	}

	// Pausing always succeeds, panel or not.
	if _, err := sched.SetSpeed(SpeedPaused); err != nil {
		t.Errorf("pause rejected: %v", err)
	}
}

func TestSetSpeedAfterGameOver(t *testing.T) {
	sched := NewScheduler(newTestGame(t, 1), time.Hour)
	defer sched.Stop()

	sched.Do(func(g *Game) error {
		g.PendingGameOver = GameOverBankruptcy
		g.surfacePanel()
		return nil
	})

	if _, err := sched.SetSpeed(Speed2x); Reason(err) != ReasonGameOver {
		t.Errorf("play after game over: reason = %q", Reason(err))
	}
}

func TestSetSpeedRejectsUnknown(t *testing.T) {
	sched := NewScheduler(newTestGame(t, 1), time.Hour)
	defer sched.Stop()

	if _, err := sched.SetSpeed(Speed(77)); Reason(err) != ReasonBadSpeed {
		t.Errorf("reason = %q, want %q", Reason(err), ReasonBadSpeed)
	}
}

func TestSchedulerDrivesTicks(t *testing.T) {
	sched := NewScheduler(newTestGame(t, 21), 2*time.Millisecond)
	defer sched.Stop()

	if _, err := sched.SetSpeed(Speed4x); err != nil {
		t.Fatal(err)
	}

	// Wait for a few ticks, clearing any panel that pauses the clock.
	deadline := time.Now().Add(5 * time.Second)
	var tick uint64
	for tick < 5 && time.Now().Before(deadline) {
		sched.Do(func(g *Game) error {
			tick = g.Tick
			for !g.Panel.None() && resolveNeutrally(t, g) {
			}
			return nil
		})
		if tick < 5 {
			if _, err := sched.SetSpeed(Speed4x); err != nil && Reason(err) != ReasonPanelActive {
				t.Fatal(err)
			}
			time.Sleep(time.Millisecond)
		}
	}
	if tick < 5 {
		t.Fatalf("only %d ticks before deadline", tick)
	}

	// Pausing stops the clock: no further ticks arrive.
	if _, err := sched.SetSpeed(SpeedPaused); err != nil {
		t.Fatal(err)
	}
	paused := sched.View().Tick
	time.Sleep(20 * time.Millisecond)
	if got := sched.View().Tick; got != paused {
		t.Errorf("tick advanced from %d to %d while paused", paused, got)
	}
}

func TestSchedulerPausesWhenPanelSurfaces(t *testing.T) {
	g := newTestGame(t, 3)
	// Winter day 28 of the final year: the very first tick ends the
	// session, so the scheduler must stop itself.
	sched := NewScheduler(g, time.Millisecond)
	defer sched.Stop()
	sched.Do(func(g *Game) error {
		g.Date = farm.Date{Year: FinalYear, Season: farm.Winter, Day: farm.DaysPerSeason}
		return nil
	})

	if _, err := sched.SetSpeed(Speed1x); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := sched.View()
		if snap.GameOver {
			if snap.Speed != "paused" {
				t.Errorf("speed = %q after game over, want paused", snap.Speed)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("game over never surfaced")
}

func TestSubscribersSeeSettledState(t *testing.T) {
	sched := NewScheduler(newTestGame(t, 1), time.Hour)
	defer sched.Stop()

	var seen []uint64
	sched.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.Tick)
	})

	sched.Do(func(g *Game) error {
		g.Step()
		return nil
	})
	sched.Do(func(g *Game) error {
		g.Step()
		return nil
	})

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("published ticks = %v, want [1 2]", seen)
	}
}

func TestReplaceStartsPaused(t *testing.T) {
	sched := NewScheduler(newTestGame(t, 1), time.Hour)
	defer sched.Stop()

	loaded := New(config.Default(), "loaded", 2)
	loaded.Speed = Speed4x
	sched.Replace(loaded)

	if loaded.Speed != SpeedPaused {
		t.Errorf("replaced game speed = %v, want paused", loaded.Speed)
	}
	if got := sched.View().PlayerID; got != "loaded" {
		t.Errorf("scheduler still serving %q", got)
	}
}
