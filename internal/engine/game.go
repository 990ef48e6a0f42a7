// Package engine provides the deterministic farm simulation core: the
// game state tree, the tick pipeline, the event and auto-pause
// machinery, and the command API consumed by a presentation layer.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/farmstead/internal/config"
	"github.com/talgya/farmstead/internal/economy"
	"github.com/talgya/farmstead/internal/farm"
)

// FinalYear caps the session; reaching the end of year 30 is the
// terminal game-over condition.
const FinalYear = 30

// Notice is a non-blocking feed entry: foreshadowing, harvest
// summaries, loan activity. Notices never stop the clock.
type Notice struct {
	Tick     uint64 `json:"tick"`
	Category string `json:"category"` // "event", "economy", "farm"
	Message  string `json:"message"`
}

// maxNotices bounds the retained feed.
const maxNotices = 200

// Game is the root state aggregate. It has exactly one writer — the
// scheduler loop — and the UI only ever sees immutable snapshots.
type Game struct {
	PlayerID string          `json:"player_id"`
	Seed     int64           `json:"seed"`
	Tick     uint64          `json:"tick"` // one tick = one simulated day
	Date     farm.Date       `json:"date"`
	Grid     *farm.Grid      `json:"grid"`
	Ledger   *economy.Ledger `json:"ledger"`
	Panel    ActivePanel     `json:"panel"`
	Events   EventClock      `json:"events"`
	RNG      *RNG            `json:"rng"`

	// Pending auto-pause conditions, arbitrated by surfacePanel.
	PendingGameOver   GameOverReason    `json:"pending_game_over,omitempty"`
	PendingLoan       bool              `json:"pending_loan,omitempty"`
	PendingThresholds []ThresholdNotice `json:"pending_thresholds,omitempty"`

	Notices []Notice `json:"notices,omitempty"`

	// Runtime-only state: not part of the saved tree. A fresh or
	// loaded game always starts paused with no selection.
	Speed    Speed `json:"-"`
	selected int   // selected cell index, -1 when none

	cfg    config.Config
	params farm.TickParams
}

// New creates a fresh game. Soil variation, event draws, and every
// later stochastic decision derive from seed alone.
func New(cfg config.Config, playerID string, seed int64) *Game {
	g := &Game{
		PlayerID: playerID,
		Seed:     seed,
		Date:     farm.NewDate(),
		Grid:     farm.Generate(farm.DefaultGenConfig(seed)),
		Ledger:   economy.NewLedger(cfg.Economy.StartingCash),
		RNG:      NewRNG(seed),
		Speed:    SpeedPaused,
		selected: -1,
		cfg:      cfg,
		params:   farm.DefaultTickParams(),
	}
	slog.Info("new game",
		"player", playerID,
		"seed", seed,
		"cash", g.Ledger.Cash,
		"date", g.Date.String(),
	)
	return g
}

// Config returns the engine configuration the game runs with.
func (g *Game) Config() config.Config {
	return g.cfg
}

// Over reports whether the session has ended.
func (g *Game) Over() bool {
	return g.Panel.Kind == PanelGameOver || g.PendingGameOver != ""
}

func (g *Game) emitNotice(category, message string) {
	g.Notices = append(g.Notices, Notice{Tick: g.Tick, Category: category, Message: message})
	if len(g.Notices) > maxNotices {
		g.Notices = g.Notices[len(g.Notices)-maxNotices:]
	}
}

// Step advances the simulation by exactly one day. Processing order
// is fixed: calendar, soil/crop model, ledger accrual, event
// evaluation, auto-pause arbitration. Step is a no-op while a panel
// is active; the scheduler additionally never fires a tick in that
// state.
func (g *Game) Step() {
	if !g.Panel.None() {
		return
	}

	// Calendar. The year-30 cap is terminal: the date never advances
	// past the last day of winter.
	next := g.Date.Next()
	if next.Year > FinalYear {
		g.PendingGameOver = GameOverYearCap
		g.surfacePanel()
		slog.Info("session complete", "tick", g.Tick, "date", g.Date.String())
		return
	}
	g.Tick++
	g.Date = next

	// Soil & crop model across all 64 cells.
	g.Grid.Each(func(c *farm.Cell) {
		report := c.Advance(g.Date.Season, g.params)
		if report.BecameReady {
			g.queueThreshold(ThresholdNotice{
				Kind:    ThresholdHarvestReady,
				Row:     c.Row,
				Col:     c.Col,
				Message: fmt.Sprintf("%s at plot (%d,%d) is ready to harvest", c.Crop.Type, c.Row, c.Col),
			})
		}
		if report.CriticalStress {
			g.queueThreshold(ThresholdNotice{
				Kind:    ThresholdWaterStress,
				Row:     c.Row,
				Col:     c.Col,
				Message: fmt.Sprintf("plot (%d,%d) has hit critical water stress", c.Row, c.Col),
			})
		}
	})

	// Economy accrual.
	g.Ledger.AccrueLoans(g.Tick)
	g.Ledger.TickBankruptcy()

	// Event triggers and foreshadow promotion.
	g.evaluateEvents()

	// Bankruptcy pathway: the ledger only supplies the predicate; the
	// decision between a loan offer and an unrecoverable game over is
	// made here.
	if g.Ledger.Bankrupt(g.cfg.Economy.GraceDays, g.cfg.Economy.HardFloor) {
		if len(g.Ledger.Loans) < g.cfg.Economy.Loan.MaxActive {
			g.PendingLoan = true
		} else if g.Ledger.HardFloorBreached(g.cfg.Economy.HardFloor) {
			g.PendingGameOver = GameOverBankruptcy
		}
	}

	// Auto-pause arbitration last, so this tick's conditions are all
	// on the table before anything surfaces.
	g.surfacePanel()
}

// queueThreshold records a generic-threshold condition. Conditions
// coalesce by kind: a field full of crops coming ready on the same
// day surfaces one pause, carrying the first triggering plot.
func (g *Game) queueThreshold(n ThresholdNotice) {
	for _, pending := range g.PendingThresholds {
		if pending.Kind == n.Kind {
			return
		}
	}
	g.PendingThresholds = append(g.PendingThresholds, n)
}
