// Field generation using layered simplex noise. Each soil readout
// samples its own noise layer so the 8×8 field starts with natural
// variation instead of a uniform baseline.
package farm

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds field generation parameters. Base values are the
// field-wide mean; spread is the noise amplitude around it.
type GenConfig struct {
	Seed           int64
	NitrogenBase   float64
	NitrogenSpread float64
	MoistureBase   float64
	MoistureSpread float64
	OrganicBase    float64
	OrganicSpread  float64
}

// DefaultGenConfig returns the baseline field profile.
func DefaultGenConfig(seed int64) GenConfig {
	return GenConfig{
		Seed:           seed,
		NitrogenBase:   55,
		NitrogenSpread: 25,
		MoistureBase:   45,
		MoistureSpread: 20,
		OrganicBase:    35,
		OrganicSpread:  30,
	}
}

// Generate creates the 64-cell field with per-cell soil variation.
// Deterministic for a given seed.
func Generate(cfg GenConfig) *Grid {
	// Independent noise layers per soil scalar.
	nitrogenNoise := opensimplex.NewNormalized(cfg.Seed)
	moistureNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	organicNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	// Sample at a coarse frequency so neighboring plots correlate the
	// way adjacent ground does.
	const freq = 0.35

	g := &Grid{}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			x := float64(col) * freq
			y := float64(row) * freq

			cell := g.At(row, col)
			cell.Row = row
			cell.Col = col
			cell.Soil = Soil{
				Nitrogen:      cfg.NitrogenBase + cfg.NitrogenSpread*(nitrogenNoise.Eval2(x, y)-0.5),
				Moisture:      cfg.MoistureBase + cfg.MoistureSpread*(moistureNoise.Eval2(x, y)-0.5),
				OrganicMatter: cfg.OrganicBase + cfg.OrganicSpread*(organicNoise.Eval2(x, y)-0.5),
			}
			cell.Soil.Clamp()
		}
	}
	return g
}
