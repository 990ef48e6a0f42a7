package farm

// Grid dimensions. The field is always exactly GridSize×GridSize.
const (
	GridSize  = 8
	CellCount = GridSize * GridSize
)

// InBounds reports whether (row, col) addresses a cell.
func InBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// Cell is one plot of the field. Cells are created once at game start
// and never destroyed; only the crop slot changes hands.
type Cell struct {
	Row        int   `json:"row"`
	Col        int   `json:"col"`
	Soil       Soil  `json:"soil"`
	Crop       *Crop `json:"crop,omitempty"`
	StressDays int   `json:"stress_days"` // consecutive days below the moisture stress line
}

// Grid is the fixed 8×8 field.
type Grid struct {
	Cells [CellCount]Cell `json:"cells"`
}

// At returns the cell at (row, col), or nil when out of bounds.
func (g *Grid) At(row, col int) *Cell {
	if !InBounds(row, col) {
		return nil
	}
	return &g.Cells[row*GridSize+col]
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(*Cell)) {
	for i := range g.Cells {
		fn(&g.Cells[i])
	}
}

// TickParams are the per-day soil dynamics constants. They come from
// engine configuration and are not part of the saved state.
type TickParams struct {
	Evaporation         [4]float64 // daily moisture loss, indexed by Season
	HeatUnits           [4]float64 // daily heat accumulation, indexed by Season
	FallowNitrogenRegen float64    // daily nitrogen recovery on empty cells
	FallowOrganicDrift  float64    // daily organic matter gain on empty cells
	CroppedOrganicDrift float64    // daily organic matter change under a crop (negative)
	MoistureStress      float64    // below this a growing crop accrues stress
	CriticalStressDays  int        // stress days before a critical report
}

// DefaultTickParams returns the baseline soil dynamics.
func DefaultTickParams() TickParams {
	return TickParams{
		Evaporation:         [4]float64{1.2, 2.4, 1.0, 0.5},
		HeatUnits:           [4]float64{8, 12, 6, 2},
		FallowNitrogenRegen: 0.6,
		FallowOrganicDrift:  0.02,
		CroppedOrganicDrift: -0.01,
		MoistureStress:      15,
		CriticalStressDays:  3,
	}
}

// CellReport flags notable transitions from a single day of cell
// processing. The engine turns these into pending auto-pause notices.
type CellReport struct {
	BecameReady    bool
	CriticalStress bool
}

// Advance runs one simulated day for the cell: evaporation, crop
// water/nitrogen draw, growth stage gates, and stress accounting.
func (c *Cell) Advance(season Season, p TickParams) CellReport {
	var report CellReport

	c.Soil.Moisture = clampSoil(c.Soil.Moisture - p.Evaporation[season])

	if c.Crop == nil {
		c.Soil.Nitrogen = clampSoil(c.Soil.Nitrogen + p.FallowNitrogenRegen)
		c.Soil.OrganicMatter = clampSoil(c.Soil.OrganicMatter + p.FallowOrganicDrift)
		c.StressDays = 0
		return report
	}

	spec := Spec(c.Crop.Type)
	if !c.Crop.Ready() {
		// The crop draws what moisture is actually available; a dry
		// cell slows accumulation rather than going negative.
		draw := spec.WaterNeed
		if c.Soil.Moisture < draw {
			draw = c.Soil.Moisture
		}
		c.Soil.Moisture -= draw
		c.Soil.Nitrogen = clampSoil(c.Soil.Nitrogen - spec.NitrogenDraw)
		c.Soil.OrganicMatter = clampSoil(c.Soil.OrganicMatter + p.CroppedOrganicDrift)

		c.Crop.AccumWater += draw
		c.Crop.AccumHeat += p.HeatUnits[season]

		for c.Crop.Stage < spec.Stages() {
			gate := spec.Gates[c.Crop.Stage]
			if c.Crop.AccumWater < gate.Water || c.Crop.AccumHeat < gate.Heat {
				break
			}
			c.Crop.Stage++
		}
		if c.Crop.Ready() {
			report.BecameReady = true
		}
	}

	if c.Soil.Moisture < p.MoistureStress {
		c.StressDays++
		if c.StressDays == p.CriticalStressDays {
			report.CriticalStress = true
		}
	} else {
		c.StressDays = 0
	}

	return report
}

// HarvestDrawDown is the soil adjustment applied when a crop is taken
// off a cell.
var HarvestDrawDown = SoilDelta{Nitrogen: -5, OrganicMatter: -3}

// HarvestRevenue returns the revenue for harvesting the cell's crop,
// scaled by soil nitrogen at harvest time. The caller guarantees a
// ready crop is present.
func (c *Cell) HarvestRevenue() int64 {
	spec := Spec(c.Crop.Type)
	factor := 0.6 + 0.4*(c.Soil.Nitrogen/SoilMax)
	return int64(float64(spec.BaseRevenue)*factor + 0.5)
}

// ClearCrop removes the crop, applies harvest draw-down, and resets
// stress accounting.
func (c *Cell) ClearCrop() {
	c.Crop = nil
	c.Soil.Apply(HarvestDrawDown)
	c.StressDays = 0
}
