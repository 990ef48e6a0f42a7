package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/farmstead/internal/economy"
	"github.com/talgya/farmstead/internal/farm"
)

// Commands are synchronous and all-or-nothing: every precondition is
// checked before the first mutation, so a rejection leaves the state
// tree untouched. The scheduler serializes commands with ticks.

// guardMutation enforces the two global preconditions shared by all
// mutating farm commands.
func (g *Game) guardMutation() error {
	if g.Over() {
		return rejectf(ReasonGameOver, "the session has ended")
	}
	if !g.Panel.None() {
		return rejectf(ReasonPanelActive, "a %s panel is awaiting resolution", g.Panel.Kind)
	}
	return nil
}

// SelectCell records the UI cursor and returns nothing the snapshot
// doesn't already carry; it exists so selection survives command
// round-trips. Selection is transient and never persisted.
func (g *Game) SelectCell(row, col int) error {
	if !farm.InBounds(row, col) {
		return rejectf(ReasonBadCoordinate, "cell (%d,%d) is out of bounds", row, col)
	}
	g.selected = row*farm.GridSize + col
	return nil
}

// SelectedCell returns the cursor coordinates, or ok=false when no
// cell is selected.
func (g *Game) SelectedCell() (row, col int, ok bool) {
	if g.selected < 0 {
		return 0, 0, false
	}
	return g.selected / farm.GridSize, g.selected % farm.GridSize, true
}

// Plant sows a crop on one cell, deducting its seed cost atomically
// with the cell mutation.
func (g *Game) Plant(row, col int, cropType farm.CropType) error {
	if err := g.guardMutation(); err != nil {
		return err
	}
	cell := g.Grid.At(row, col)
	if cell == nil {
		return rejectf(ReasonBadCoordinate, "cell (%d,%d) is out of bounds", row, col)
	}
	if !cropType.Valid() {
		return rejectf(ReasonBadCrop, "unknown crop type %d", cropType)
	}
	spec := farm.Spec(cropType)
	if cell.Crop != nil {
		return rejectf(ReasonCellOccupied, "cell (%d,%d) already holds %s", row, col, cell.Crop.Type)
	}
	if !spec.PlantableIn(g.Date.Season) {
		return rejectf(ReasonWrongSeason, "%s cannot be planted in %s", spec.Name, g.Date.Season)
	}
	if !g.Ledger.CanAfford(spec.SeedCost) {
		return rejectf(ReasonInsufficientCash, "%s costs %d, cash is %d", spec.Name, spec.SeedCost, g.Ledger.Cash)
	}

	g.Ledger.Apply(g.Tick, economy.TxPlant, -spec.SeedCost, fmt.Sprintf("%s (%d,%d)", spec.Name, row, col))
	cell.Crop = farm.NewCrop(cropType, g.Date)
	slog.Debug("planted", "crop", spec.Name, "row", row, "col", col, "cash", g.Ledger.Cash)
	return nil
}

// Harvest takes a ready crop off one cell: the crop slot clears, the
// soil draws down, and revenue is credited.
func (g *Game) Harvest(row, col int) error {
	if err := g.guardMutation(); err != nil {
		return err
	}
	cell := g.Grid.At(row, col)
	if cell == nil {
		return rejectf(ReasonBadCoordinate, "cell (%d,%d) is out of bounds", row, col)
	}
	if cell.Crop == nil {
		return rejectf(ReasonNoCrop, "cell (%d,%d) is empty", row, col)
	}
	if !cell.Crop.Ready() {
		return rejectf(ReasonNotReady, "%s at (%d,%d) is at stage %d of %d",
			cell.Crop.Type, row, col, cell.Crop.Stage, farm.Spec(cell.Crop.Type).Stages())
	}

	revenue := cell.HarvestRevenue()
	name := cell.Crop.Type.String()
	cell.ClearCrop()
	g.Ledger.Apply(g.Tick, economy.TxHarvest, revenue, fmt.Sprintf("%s (%d,%d)", name, row, col))
	g.emitNotice("farm", fmt.Sprintf("Harvested %s at (%d,%d) for %d", name, row, col, revenue))
	return nil
}

// waterCell irrigates one cell. Only reachable through bulk ops; the
// caller has already charged the ledger.
func (g *Game) waterCell(cell *farm.Cell) {
	cell.Soil.Apply(farm.SoilDelta{Moisture: g.cfg.Soil.WaterAmount})
}

// BulkScope selects the rows under a bulk operation.
type BulkScope string

const (
	ScopeRow   BulkScope = "row"
	ScopeCol   BulkScope = "col"
	ScopeField BulkScope = "field"
)

// BulkOp is the per-cell action a bulk command applies.
type BulkOp string

const (
	OpPlant   BulkOp = "plant"
	OpWater   BulkOp = "water"
	OpHarvest BulkOp = "harvest"
)

// BulkPreview is the cost disclosure for a pending bulk operation,
// exposed so a UI confirm/cancel step is accurate before anything is
// spent. Field-wide operations with non-trivial cost must be gated on
// this preview by the caller.
type BulkPreview struct {
	Scope        BulkScope `json:"scope"`
	Op           BulkOp    `json:"op"`
	Cells        [][2]int  `json:"cells"` // eligible (row, col) targets
	TotalCost    int64     `json:"total_cost"`
	TotalRevenue int64     `json:"total_revenue"`
}

// bulkTargets resolves the scope to candidate cells.
func (g *Game) bulkTargets(scope BulkScope, index int) ([]*farm.Cell, error) {
	var cells []*farm.Cell
	switch scope {
	case ScopeRow:
		if index < 0 || index >= farm.GridSize {
			return nil, rejectf(ReasonBadCoordinate, "row %d is out of bounds", index)
		}
		for col := 0; col < farm.GridSize; col++ {
			cells = append(cells, g.Grid.At(index, col))
		}
	case ScopeCol:
		if index < 0 || index >= farm.GridSize {
			return nil, rejectf(ReasonBadCoordinate, "col %d is out of bounds", index)
		}
		for row := 0; row < farm.GridSize; row++ {
			cells = append(cells, g.Grid.At(row, index))
		}
	case ScopeField:
		g.Grid.Each(func(c *farm.Cell) {
			cells = append(cells, c)
		})
	default:
		return nil, rejectf(ReasonBadScope, "unknown bulk scope %q", scope)
	}
	return cells, nil
}

// PreviewBulk reports the eligible cells and aggregate money movement
// of a bulk operation without applying it.
func (g *Game) PreviewBulk(scope BulkScope, op BulkOp, index int, cropType farm.CropType) (BulkPreview, error) {
	preview := BulkPreview{Scope: scope, Op: op}
	if err := g.guardMutation(); err != nil {
		return preview, err
	}

	candidates, err := g.bulkTargets(scope, index)
	if err != nil {
		return preview, err
	}

	switch op {
	case OpPlant:
		if !cropType.Valid() {
			return preview, rejectf(ReasonBadCrop, "unknown crop type %d", cropType)
		}
		spec := farm.Spec(cropType)
		if !spec.PlantableIn(g.Date.Season) {
			return preview, rejectf(ReasonWrongSeason, "%s cannot be planted in %s", spec.Name, g.Date.Season)
		}
		for _, c := range candidates {
			if c.Crop == nil {
				preview.Cells = append(preview.Cells, [2]int{c.Row, c.Col})
				preview.TotalCost += spec.SeedCost
			}
		}
	case OpWater:
		for _, c := range candidates {
			preview.Cells = append(preview.Cells, [2]int{c.Row, c.Col})
			preview.TotalCost += g.cfg.Soil.WaterCost
		}
	case OpHarvest:
		for _, c := range candidates {
			if c.Crop != nil && c.Crop.Ready() {
				preview.Cells = append(preview.Cells, [2]int{c.Row, c.Col})
				preview.TotalRevenue += c.HarvestRevenue()
			}
		}
	default:
		return preview, rejectf(ReasonBadScope, "unknown bulk op %q", op)
	}

	return preview, nil
}

// Bulk applies one operation across a row, column, or the whole field
// as a single economic transaction. Per-cell preconditions decide
// eligibility (ineligible cells are skipped); the aggregate cost is a
// hard precondition for the whole operation.
func (g *Game) Bulk(scope BulkScope, op BulkOp, index int, cropType farm.CropType) error {
	preview, err := g.PreviewBulk(scope, op, index, cropType)
	if err != nil {
		return err
	}
	if len(preview.Cells) == 0 {
		return rejectf(ReasonEmptyBulk, "no eligible cells for %s %s", op, scope)
	}
	if preview.TotalCost > 0 && !g.Ledger.CanAfford(preview.TotalCost) {
		return rejectf(ReasonInsufficientCash, "bulk %s costs %d, cash is %d", op, preview.TotalCost, g.Ledger.Cash)
	}

	switch op {
	case OpPlant:
		spec := farm.Spec(cropType)
		g.Ledger.Apply(g.Tick, economy.TxPlant, -preview.TotalCost,
			fmt.Sprintf("bulk plant %s ×%d", spec.Name, len(preview.Cells)))
		for _, rc := range preview.Cells {
			g.Grid.At(rc[0], rc[1]).Crop = farm.NewCrop(cropType, g.Date)
		}
	case OpWater:
		g.Ledger.Apply(g.Tick, economy.TxWater, -preview.TotalCost,
			fmt.Sprintf("bulk water ×%d", len(preview.Cells)))
		for _, rc := range preview.Cells {
			g.waterCell(g.Grid.At(rc[0], rc[1]))
		}
	case OpHarvest:
		for _, rc := range preview.Cells {
			g.Grid.At(rc[0], rc[1]).ClearCrop()
		}
		g.Ledger.Apply(g.Tick, economy.TxHarvest, preview.TotalRevenue,
			fmt.Sprintf("bulk harvest ×%d", len(preview.Cells)))
	}

	slog.Info("bulk operation",
		"scope", scope,
		"op", op,
		"cells", len(preview.Cells),
		"cost", preview.TotalCost,
		"revenue", preview.TotalRevenue,
	)
	return nil
}

// ResolvePanel dismisses the active panel with the given choice. The
// clock stays paused afterwards: resuming always requires an explicit
// speed command. Resolution immediately re-arbitrates, so the next
// pending condition may surface in the same call.
func (g *Game) ResolvePanel(choiceID string) error {
	switch g.Panel.Kind {
	case PanelNone:
		return rejectf(ReasonNoPanel, "no panel is active")

	case PanelGameOver:
		// Terminal: nothing dismisses it.
		return rejectf(ReasonGameOver, "the session has ended")

	case PanelEvent:
		occ := g.Panel.Occurrence
		var chosen *Choice
		for i := range occ.Choices {
			if occ.Choices[i].ID == choiceID {
				chosen = &occ.Choices[i]
				break
			}
		}
		if chosen == nil {
			return rejectf(ReasonBadChoice, "event %s has no choice %q", occ.EventID, choiceID)
		}
		g.Panel = ActivePanel{}
		g.applyChoice(occ, *chosen)

	case PanelLoanOffer:
		offer := g.Panel.Loan
		switch choiceID {
		case LoanAccept:
			g.Panel = ActivePanel{}
			g.PendingLoan = false
			g.Ledger.AcceptLoan(g.Tick, offer.Principal, offer.InterestRate, offer.TermDays)
			g.emitNotice("economy", fmt.Sprintf("Loan accepted: %d over %d days", offer.Principal, offer.TermDays))
		case LoanDecline:
			// Cash unchanged. The grace counter restarts so the offer
			// recurs on a later tick while the stress persists.
			g.Panel = ActivePanel{}
			g.PendingLoan = false
			g.Ledger.ResetGrace()
			g.emitNotice("economy", "Loan declined")
		default:
			return rejectf(ReasonBadChoice, "loan offers take %q or %q", LoanAccept, LoanDecline)
		}

	case PanelThreshold:
		if choiceID != ThresholdDismiss {
			return rejectf(ReasonBadChoice, "threshold panels take %q", ThresholdDismiss)
		}
		g.Panel = ActivePanel{}
	}

	// Lower-priority conditions held back by the dismissed panel get
	// their turn now.
	g.surfacePanel()
	return nil
}
