package farm

import "testing"

func TestSoilApplyClamps(t *testing.T) {
	tests := []struct {
		name  string
		start Soil
		delta SoilDelta
		want  Soil
	}{
		{
			name:  "plain addition",
			start: Soil{Nitrogen: 50, Moisture: 40, OrganicMatter: 30},
			delta: SoilDelta{Nitrogen: 10, Moisture: -5, OrganicMatter: 2},
			want:  Soil{Nitrogen: 60, Moisture: 35, OrganicMatter: 32},
		},
		{
			name:  "clamped at ceiling",
			start: Soil{Nitrogen: 95, Moisture: 98, OrganicMatter: 99},
			delta: SoilDelta{Nitrogen: 20, Moisture: 20, OrganicMatter: 20},
			want:  Soil{Nitrogen: 100, Moisture: 100, OrganicMatter: 100},
		},
		{
			name:  "clamped at floor",
			start: Soil{Nitrogen: 3, Moisture: 1, OrganicMatter: 0},
			delta: SoilDelta{Nitrogen: -10, Moisture: -10, OrganicMatter: -10},
			want:  Soil{Nitrogen: 0, Moisture: 0, OrganicMatter: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			s.Apply(tt.delta)
			if s != tt.want {
				t.Errorf("Apply(%+v) = %+v, want %+v", tt.delta, s, tt.want)
			}
		})
	}
}

func TestGridAt(t *testing.T) {
	g := Generate(DefaultGenConfig(1))

	if c := g.At(0, 0); c == nil || c.Row != 0 || c.Col != 0 {
		t.Fatalf("At(0,0) = %+v", c)
	}
	if c := g.At(7, 7); c == nil || c.Row != 7 || c.Col != 7 {
		t.Fatalf("At(7,7) = %+v", c)
	}
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if c := g.At(rc[0], rc[1]); c != nil {
			t.Errorf("At(%d,%d) = %+v, want nil", rc[0], rc[1], c)
		}
	}
}

func TestFallowCellRegenerates(t *testing.T) {
	p := DefaultTickParams()
	c := Cell{Soil: Soil{Nitrogen: 40, Moisture: 50, OrganicMatter: 30}}

	report := c.Advance(Spring, p)

	if report.BecameReady || report.CriticalStress {
		t.Errorf("fallow cell reported %+v", report)
	}
	if c.Soil.Nitrogen != 40+p.FallowNitrogenRegen {
		t.Errorf("nitrogen = %v, want %v", c.Soil.Nitrogen, 40+p.FallowNitrogenRegen)
	}
	if c.Soil.Moisture != 50-p.Evaporation[Spring] {
		t.Errorf("moisture = %v, want %v", c.Soil.Moisture, 50-p.Evaporation[Spring])
	}
}

func TestCropDrawsWaterAndNitrogen(t *testing.T) {
	p := DefaultTickParams()
	spec := Spec(ProcessingTomatoes)
	c := Cell{
		Soil: Soil{Nitrogen: 60, Moisture: 80, OrganicMatter: 30},
		Crop: NewCrop(ProcessingTomatoes, NewDate()),
	}

	c.Advance(Spring, p)

	wantMoisture := 80 - p.Evaporation[Spring] - spec.WaterNeed
	if c.Soil.Moisture != wantMoisture {
		t.Errorf("moisture = %v, want %v", c.Soil.Moisture, wantMoisture)
	}
	if c.Soil.Nitrogen != 60-spec.NitrogenDraw {
		t.Errorf("nitrogen = %v, want %v", c.Soil.Nitrogen, 60-spec.NitrogenDraw)
	}
	if c.Crop.AccumWater != spec.WaterNeed {
		t.Errorf("accum water = %v, want %v", c.Crop.AccumWater, spec.WaterNeed)
	}
	if c.Crop.AccumHeat != p.HeatUnits[Spring] {
		t.Errorf("accum heat = %v, want %v", c.Crop.AccumHeat, p.HeatUnits[Spring])
	}
}

func TestCropGrowsToHarvestReady(t *testing.T) {
	p := DefaultTickParams()
	c := Cell{
		Soil: Soil{Nitrogen: 80, Moisture: 60, OrganicMatter: 40},
		Crop: NewCrop(ProcessingTomatoes, NewDate()),
	}

	// Keep the cell irrigated the way bulk watering would.
	became := false
	for day := 0; day < 120 && !became; day++ {
		if c.Soil.Moisture < 40 {
			c.Soil.Apply(SoilDelta{Moisture: 25, Nitrogen: 5})
		}
		report := c.Advance(Summer, p)
		became = report.BecameReady
	}

	if !became {
		t.Fatalf("crop never became ready: stage %d, water %.1f, heat %.1f",
			c.Crop.Stage, c.Crop.AccumWater, c.Crop.AccumHeat)
	}
	if !c.Crop.Ready() {
		t.Error("BecameReady reported but Ready() is false")
	}

	// A ready crop stops drawing water.
	before := c.Soil.Moisture
	c.Advance(Summer, p)
	if got, want := c.Soil.Moisture, before-p.Evaporation[Summer]; got != want {
		t.Errorf("ready crop moisture = %v, want evaporation only %v", got, want)
	}
}

func TestWaterStressReportsOnce(t *testing.T) {
	p := DefaultTickParams()
	c := Cell{
		Soil: Soil{Nitrogen: 50, Moisture: 5, OrganicMatter: 30},
		Crop: NewCrop(SilageCorn, NewDate()),
	}

	critical := 0
	for day := 0; day < p.CriticalStressDays+3; day++ {
		if c.Advance(Summer, p).CriticalStress {
			critical++
		}
	}
	if critical != 1 {
		t.Errorf("critical stress reported %d times, want 1", critical)
	}

	// Recovery resets the episode.
	c.Soil.Moisture = 60
	c.Advance(Summer, p)
	if c.StressDays != 0 {
		t.Errorf("stress days = %d after recovery, want 0", c.StressDays)
	}
}

func TestHarvestRevenueScalesWithNitrogen(t *testing.T) {
	rich := Cell{Soil: Soil{Nitrogen: 100}, Crop: NewCrop(WinterWheat, NewDate())}
	poor := Cell{Soil: Soil{Nitrogen: 0}, Crop: NewCrop(WinterWheat, NewDate())}

	base := Spec(WinterWheat).BaseRevenue
	if got := rich.HarvestRevenue(); got != base {
		t.Errorf("full-nitrogen revenue = %d, want %d", got, base)
	}
	wantPoor := int64(float64(base)*0.6 + 0.5)
	if got := poor.HarvestRevenue(); got != wantPoor {
		t.Errorf("zero-nitrogen revenue = %d, want %d", got, wantPoor)
	}
}

func TestClearCropAppliesDrawDown(t *testing.T) {
	c := Cell{
		Soil:       Soil{Nitrogen: 50, Moisture: 40, OrganicMatter: 30},
		Crop:       NewCrop(Alfalfa, NewDate()),
		StressDays: 2,
	}
	c.ClearCrop()

	if c.Crop != nil {
		t.Error("crop slot not cleared")
	}
	if c.StressDays != 0 {
		t.Error("stress days not reset")
	}
	if c.Soil.Nitrogen != 50+HarvestDrawDown.Nitrogen {
		t.Errorf("nitrogen = %v after draw-down", c.Soil.Nitrogen)
	}
	if c.Soil.OrganicMatter != 30+HarvestDrawDown.OrganicMatter {
		t.Errorf("organic matter = %v after draw-down", c.Soil.OrganicMatter)
	}
}

func TestPlantableSeasons(t *testing.T) {
	tests := []struct {
		crop   CropType
		season Season
		want   bool
	}{
		{WinterWheat, Spring, false},
		{WinterWheat, Fall, true},
		{ProcessingTomatoes, Spring, true},
		{ProcessingTomatoes, Fall, false},
		{Strawberries, Summer, false},
		{Alfalfa, Winter, false},
		{Alfalfa, Fall, true},
	}

	for _, tt := range tests {
		if got := Spec(tt.crop).PlantableIn(tt.season); got != tt.want {
			t.Errorf("%s plantable in %s = %v, want %v", tt.crop, tt.season, got, tt.want)
		}
	}
}

func TestCropTypeRoundTrip(t *testing.T) {
	for _, spec := range AllCrops() {
		got, ok := CropTypeFromString(spec.Name)
		if !ok || got != spec.Type {
			t.Errorf("CropTypeFromString(%q) = %v, %v", spec.Name, got, ok)
		}
	}
	if _, ok := CropTypeFromString("Moon Melons"); ok {
		t.Error("unknown crop name resolved")
	}
}

func TestDateAdvances(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{"mid-season", Date{Year: 1, Season: Spring, Day: 10}, Date{Year: 1, Season: Spring, Day: 11}},
		{"season roll", Date{Year: 1, Season: Spring, Day: DaysPerSeason}, Date{Year: 1, Season: Summer, Day: 1}},
		{"year roll", Date{Year: 2, Season: Winter, Day: DaysPerSeason}, Date{Year: 3, Season: Spring, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Next(); got != tt.want {
				t.Errorf("%v.Next() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
