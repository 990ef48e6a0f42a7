// Command farmsim runs the farmstead engine headless: it starts a
// season, plays at top speed with a simple caretaker policy, and
// exercises the full command surface the way a UI would.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/farmstead/internal/config"
	"github.com/talgya/farmstead/internal/engine"
	"github.com/talgya/farmstead/internal/farm"
	"github.com/talgya/farmstead/internal/persistence"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		dbPath     = flag.String("db", "data/farmstead.db", "save-slot database path")
		seed       = flag.Int64("seed", 0, "game seed (0 = wall clock)")
		player     = flag.String("player", "caretaker", "player id")
		tickMillis = flag.Int("tick-ms", 0, "override base tick interval in ms")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	if *tickMillis > 0 {
		cfg.Clock.BaseTickMillis = *tickMillis
	}

	gameSeed := *seed
	if gameSeed == 0 {
		gameSeed = time.Now().UnixNano()
	}

	store, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open save database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	manager := persistence.NewManager(store, cfg)

	game := engine.New(cfg, *player, gameSeed)
	sched := engine.NewScheduler(game, cfg.Clock.BaseInterval())

	// Snapshot feed. The subscriber runs under the scheduler lock, so
	// it only forwards; the policy loop below does the reacting.
	snaps := make(chan engine.Snapshot, 64)
	sched.Subscribe(func(s engine.Snapshot) {
		select {
		case snaps <- s:
		default: // drop under pressure; the next snapshot supersedes
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Opening move: sow the whole field with tomatoes, previewing the
	// aggregate cost first the way a confirm dialog would.
	err = sched.Do(func(g *engine.Game) error {
		preview, err := g.PreviewBulk(engine.ScopeField, engine.OpPlant, 0, farm.ProcessingTomatoes)
		if err != nil {
			return err
		}
		slog.Info("field planting previewed",
			"cells", len(preview.Cells),
			"cost", humanize.Comma(preview.TotalCost),
		)
		return g.Bulk(engine.ScopeField, engine.OpPlant, 0, farm.ProcessingTomatoes)
	})
	if err != nil {
		slog.Error("opening planting failed", "error", err)
		os.Exit(1)
	}

	if _, err := sched.SetSpeed(engine.Speed4x); err != nil {
		slog.Error("failed to start clock", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Farmstead: %d plots, seed %d. Running to year %d... (Ctrl+C to stop)\n",
		farm.CellCount, gameSeed, engine.FinalYear)

	// The snapshot channel drops under pressure, so a panel's
	// announcement can be lost; the watchdog polls the settled state
	// to pick up anything the feed missed.
	watchdog := time.NewTicker(time.Second)
	defer watchdog.Stop()

	lastAutosaveTick := uint64(0)
loop:
	for {
		var snap engine.Snapshot
		select {
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			break loop
		case snap = <-snaps:
		case <-watchdog.C:
			snap = sched.View()
		}

		if snap.Tick > 0 && snap.Tick%uint64(farm.DaysPerSeason) == 0 && snap.Tick != lastAutosaveTick {
			lastAutosaveTick = snap.Tick
			if err := sched.Do(func(g *engine.Game) error {
				_, err := manager.Save("autosave", g)
				return err
			}); err != nil {
				slog.Error("autosave failed", "error", err)
			}
			slog.Info("season report",
				"date", snap.Date,
				"cash", snap.CashDisplay,
				"loans", len(snap.Loans),
			)
		}

		if snap.GameOver {
			slog.Info("session over", "date", snap.Date, "cash", snap.CashDisplay)
			break loop
		}
		if snap.Panel.Kind == engine.PanelNone.String() {
			continue
		}

		// Caretaker policy: take the cheap way through every panel,
		// harvest when told the field is ready, and keep the clock
		// moving.
		if err := resolvePanel(sched); err != nil {
			slog.Error("panel resolution failed", "error", err)
			break loop
		}
		if _, err := sched.SetSpeed(engine.Speed4x); err != nil {
			switch engine.Reason(err) {
			case engine.ReasonPanelActive, engine.ReasonGameOver:
				// The next snapshot drives the follow-up panel.
			default:
				slog.Error("failed to resume clock", "error", err)
				break loop
			}
		}
	}

	sched.Stop()

	if err := sched.Do(func(g *engine.Game) error {
		_, err := manager.Save("shutdown", g)
		return err
	}); err != nil {
		slog.Error("final save failed", "error", err)
	}

	if slots, err := manager.List(); err == nil {
		for _, meta := range slots {
			slog.Info("slot", "name", meta.Name, "date", meta.GameDate, "saved_at", meta.SavedAt)
		}
	}
	fmt.Println("Simulation stopped. Session saved.")
}

// resolvePanel applies the caretaker policy to whatever panel is
// live at execution time; a stale snapshot never drives a resolution.
func resolvePanel(sched *engine.Scheduler) error {
	return sched.Do(func(g *engine.Game) error {
		switch g.Panel.Kind {
		case engine.PanelEvent:
			// First catalog choice: the cautious option by convention.
			occ := g.Panel.Occurrence
			slog.Info("event", "title", occ.Title, "choice", occ.Choices[0].Label)
			return g.ResolvePanel(occ.Choices[0].ID)

		case engine.PanelLoanOffer:
			slog.Info("loan offered", "principal", g.Panel.Loan.Principal)
			return g.ResolvePanel(engine.LoanAccept)

		case engine.PanelThreshold:
			harvest := g.Panel.Threshold.Kind == engine.ThresholdHarvestReady
			if err := g.ResolvePanel(engine.ThresholdDismiss); err != nil {
				return err
			}
			if harvest && g.Panel.None() {
				err := g.Bulk(engine.ScopeField, engine.OpHarvest, 0, 0)
				if err != nil && engine.Reason(err) != engine.ReasonEmptyBulk {
					return err
				}
				// Replant whatever the season allows.
				for _, spec := range farm.AllCrops() {
					if spec.PlantableIn(g.Date.Season) {
						err := g.Bulk(engine.ScopeField, engine.OpPlant, 0, spec.Type)
						if err != nil && engine.Reason(err) != engine.ReasonEmptyBulk &&
							engine.Reason(err) != engine.ReasonInsufficientCash {
							return err
						}
						break
					}
				}
			}
			return nil

		default:
			// Already resolved by an earlier pass, or terminal.
			return nil
		}
	})
}
