package farm

// CropType identifies an entry in the static crop catalog.
type CropType uint8

const (
	ProcessingTomatoes CropType = iota
	SilageCorn
	WinterWheat
	Strawberries
	Alfalfa

	cropTypeCount
)

// String returns the display name for the crop type.
func (t CropType) String() string {
	if spec, ok := lookupSpec(t); ok {
		return spec.Name
	}
	return "Unknown"
}

// Valid reports whether t names a cataloged crop.
func (t CropType) Valid() bool {
	return t < cropTypeCount
}

// CropTypeFromString maps a catalog name back to its type.
func CropTypeFromString(name string) (CropType, bool) {
	for t := CropType(0); t < cropTypeCount; t++ {
		if catalog[t].Name == name {
			return t, true
		}
	}
	return 0, false
}

// StageGate is the cumulative water/heat requirement to leave a
// growth stage. A crop is harvest-ready once it has passed every gate.
type StageGate struct {
	Water float64
	Heat  float64
}

// CropSpec is the static definition of one crop type.
type CropSpec struct {
	Type         CropType
	Name         string
	SeedCost     int64    // deducted on plant
	BaseRevenue  int64    // credited on harvest, scaled by soil nitrogen
	Seasons      []Season // seasons in which planting is permitted
	WaterNeed    float64  // daily moisture draw while growing
	NitrogenDraw float64  // daily nitrogen draw; negative fixes nitrogen
	Gates        []StageGate
}

// PlantableIn reports whether the crop may be planted in season s.
// This is a hard precondition, not a warning.
func (c CropSpec) PlantableIn(s Season) bool {
	for _, valid := range c.Seasons {
		if valid == s {
			return true
		}
	}
	return false
}

// Stages returns the number of growth stages before harvest-ready.
func (c CropSpec) Stages() int {
	return len(c.Gates)
}

// The crop catalog. Gate values are cumulative water and heat units;
// heat units per day depend on the season (see TickParams.HeatUnits).
var catalog = [cropTypeCount]CropSpec{
	ProcessingTomatoes: {
		Type:         ProcessingTomatoes,
		Name:         "Processing Tomatoes",
		SeedCost:     150,
		BaseRevenue:  420,
		Seasons:      []Season{Spring, Summer},
		WaterNeed:    3.0,
		NitrogenDraw: 0.8,
		Gates: []StageGate{
			{Water: 20, Heat: 60},
			{Water: 45, Heat: 130},
			{Water: 75, Heat: 210},
			{Water: 110, Heat: 300},
		},
	},
	SilageCorn: {
		Type:         SilageCorn,
		Name:         "Silage Corn",
		SeedCost:     120,
		BaseRevenue:  360,
		Seasons:      []Season{Spring, Summer},
		WaterNeed:    2.6,
		NitrogenDraw: 1.0,
		Gates: []StageGate{
			{Water: 18, Heat: 70},
			{Water: 40, Heat: 150},
			{Water: 70, Heat: 240},
			{Water: 100, Heat: 330},
		},
	},
	// Winter wheat goes in the ground in fall and matures through the
	// cold months, so its heat gates are deliberately low.
	WinterWheat: {
		Type:         WinterWheat,
		Name:         "Winter Wheat",
		SeedCost:     90,
		BaseRevenue:  300,
		Seasons:      []Season{Fall},
		WaterNeed:    1.2,
		NitrogenDraw: 0.5,
		Gates: []StageGate{
			{Water: 10, Heat: 20},
			{Water: 25, Heat: 45},
			{Water: 45, Heat: 80},
			{Water: 70, Heat: 120},
		},
	},
	Strawberries: {
		Type:         Strawberries,
		Name:         "Strawberries",
		SeedCost:     200,
		BaseRevenue:  520,
		Seasons:      []Season{Spring},
		WaterNeed:    2.2,
		NitrogenDraw: 0.6,
		Gates: []StageGate{
			{Water: 15, Heat: 40},
			{Water: 35, Heat: 95},
			{Water: 60, Heat: 160},
			{Water: 85, Heat: 230},
		},
	},
	// Alfalfa is a nitrogen fixer: its draw is negative.
	Alfalfa: {
		Type:         Alfalfa,
		Name:         "Alfalfa",
		SeedCost:     60,
		BaseRevenue:  180,
		Seasons:      []Season{Spring, Summer, Fall},
		WaterNeed:    1.8,
		NitrogenDraw: -0.4,
		Gates: []StageGate{
			{Water: 12, Heat: 35},
			{Water: 28, Heat: 80},
			{Water: 48, Heat: 140},
		},
	},
}

// Spec returns the catalog entry for a crop type. Panics on an
// out-of-range type; callers validate with CropType.Valid first.
func Spec(t CropType) CropSpec {
	spec, ok := lookupSpec(t)
	if !ok {
		panic("farm: unknown crop type")
	}
	return spec
}

func lookupSpec(t CropType) (CropSpec, bool) {
	if !t.Valid() {
		return CropSpec{}, false
	}
	return catalog[t], true
}

// AllCrops returns the catalog in declaration order.
func AllCrops() []CropSpec {
	return catalog[:]
}

// Crop is a planted instance occupying one cell.
type Crop struct {
	Type       CropType `json:"type"`
	PlantedOn  Date     `json:"planted_on"`
	Stage      int      `json:"stage"`
	AccumWater float64  `json:"accum_water"`
	AccumHeat  float64  `json:"accum_heat"`
}

// NewCrop returns a freshly planted crop at stage zero.
func NewCrop(t CropType, plantedOn Date) *Crop {
	return &Crop{Type: t, PlantedOn: plantedOn}
}

// Ready reports whether the crop has reached its terminal stage.
func (c *Crop) Ready() bool {
	return c.Stage >= Spec(c.Type).Stages()
}
