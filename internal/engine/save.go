package engine

import (
	"encoding/json"
	"fmt"

	"github.com/talgya/farmstead/internal/config"
	"github.com/talgya/farmstead/internal/farm"
)

// The saved state tree is the Game's exported fields: grid, ledger,
// loans, pending and active events, panel, and RNG state. Runtime-only
// fields (speed, selection, config) are excluded, so a loaded game
// always comes back paused with no cursor.

// MarshalState encodes the full state tree.
func (g *Game) MarshalState() ([]byte, error) {
	return json.Marshal(g)
}

// Restore decodes a state tree, validates it structurally, and
// reattaches the runtime configuration. The returned game is paused.
func Restore(cfg config.Config, data []byte) (*Game, error) {
	g := &Game{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.Speed = SpeedPaused
	g.selected = -1
	g.cfg = cfg
	g.params = farm.DefaultTickParams()
	return g, nil
}

// Validate checks the structural invariants of a decoded state tree.
func (g *Game) Validate() error {
	if g.Grid == nil {
		return fmt.Errorf("state missing grid")
	}
	if g.Ledger == nil {
		return fmt.Errorf("state missing ledger")
	}
	if g.RNG == nil {
		return fmt.Errorf("state missing rng")
	}
	if !g.Date.Season.Valid() {
		return fmt.Errorf("invalid season %d", g.Date.Season)
	}
	if g.Date.Day < 1 || g.Date.Day > farm.DaysPerSeason {
		return fmt.Errorf("invalid day %d", g.Date.Day)
	}
	if g.Date.Year < 1 || g.Date.Year > FinalYear {
		return fmt.Errorf("invalid year %d", g.Date.Year)
	}

	for i := range g.Grid.Cells {
		cell := &g.Grid.Cells[i]
		if cell.Row != i/farm.GridSize || cell.Col != i%farm.GridSize {
			return fmt.Errorf("cell %d has coordinates (%d,%d)", i, cell.Row, cell.Col)
		}
		if cell.Crop != nil && !cell.Crop.Type.Valid() {
			return fmt.Errorf("cell %d holds unknown crop type %d", i, cell.Crop.Type)
		}
	}

	if err := g.Panel.Validate(); err != nil {
		return fmt.Errorf("invalid panel: %w", err)
	}
	for _, p := range g.Events.Pending {
		if _, ok := findEventDef(p.EventID); !ok {
			return fmt.Errorf("pending occurrence references unknown event %q", p.EventID)
		}
	}
	for _, occ := range g.Events.Due {
		if _, ok := findEventDef(occ.EventID); !ok {
			return fmt.Errorf("due occurrence references unknown event %q", occ.EventID)
		}
	}
	return nil
}
