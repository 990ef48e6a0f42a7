package farm

// Soil scalar bounds. All three readouts live on a 0–100 scale.
const (
	SoilMin = 0.0
	SoilMax = 100.0
)

// Soil holds the physical state of one plot.
type Soil struct {
	Nitrogen      float64 `json:"nitrogen"`
	Moisture      float64 `json:"moisture"`
	OrganicMatter float64 `json:"organic_matter"`
}

// SoilDelta is a bounded adjustment applied to soil, used by harvest
// draw-down and event choice effects.
type SoilDelta struct {
	Nitrogen      float64 `json:"nitrogen,omitempty"`
	Moisture      float64 `json:"moisture,omitempty"`
	OrganicMatter float64 `json:"organic_matter,omitempty"`
}

// IsZero reports whether the delta changes nothing.
func (d SoilDelta) IsZero() bool {
	return d.Nitrogen == 0 && d.Moisture == 0 && d.OrganicMatter == 0
}

// Apply adds the delta to the soil, clamping every scalar.
func (s *Soil) Apply(d SoilDelta) {
	s.Nitrogen = clampSoil(s.Nitrogen + d.Nitrogen)
	s.Moisture = clampSoil(s.Moisture + d.Moisture)
	s.OrganicMatter = clampSoil(s.OrganicMatter + d.OrganicMatter)
}

// Clamp forces all scalars back into the defined range.
func (s *Soil) Clamp() {
	s.Nitrogen = clampSoil(s.Nitrogen)
	s.Moisture = clampSoil(s.Moisture)
	s.OrganicMatter = clampSoil(s.OrganicMatter)
}

func clampSoil(v float64) float64 {
	if v < SoilMin {
		return SoilMin
	}
	if v > SoilMax {
		return SoilMax
	}
	return v
}
