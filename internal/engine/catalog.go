package engine

import "github.com/talgya/farmstead/internal/farm"

// anyCropPlanted is the shared predicate for pest and market events.
func anyCropPlanted(g *Game) bool {
	planted := false
	g.Grid.Each(func(c *farm.Cell) {
		if c.Crop != nil {
			planted = true
		}
	})
	return planted
}

// eventCatalog is the static event table. Order is priority order:
// when several occurrences come due on the same tick they surface in
// this sequence across successive resolutions.
var eventCatalog = []EventDef{
	{
		ID:           "late-frost",
		Title:        "Late Frost Warning",
		Description:  "A hard freeze is moving in overnight. Tender plantings will not survive unprotected.",
		Foreshadow:   "The extension office warns of a late frost within days.",
		LeadTicks:    2,
		CooldownDays: 56,
		Probability:  0.015,
		Predicate: func(g *Game) bool {
			return g.Date.Season == farm.Spring && anyCropPlanted(g)
		},
		Choices: []Choice{
			{
				ID:     "covers",
				Label:  "Deploy frost covers",
				Effect: ChoiceEffect{CashDelta: -600},
			},
			{
				ID:     "gamble",
				Label:  "Gamble on clear skies",
				Effect: ChoiceEffect{DestroyCrops: true},
			},
		},
	},
	{
		ID:           "summer-drought",
		Title:        "Drought Declaration",
		Description:  "The district has declared a drought emergency. Canal allocations are suspended.",
		Foreshadow:   "Reservoir levels are falling fast; a drought declaration looks likely.",
		LeadTicks:    5,
		CooldownDays: 56,
		Probability:  0.02,
		Predicate: func(g *Game) bool {
			return g.Date.Season == farm.Summer
		},
		Choices: []Choice{
			{
				ID:     "buy-water",
				Label:  "Buy district water",
				Effect: ChoiceEffect{CashDelta: -2500, Soil: farm.SoilDelta{Moisture: 20}},
			},
			{
				ID:     "ride-out",
				Label:  "Let the field bake",
				Effect: ChoiceEffect{Soil: farm.SoilDelta{Moisture: -25}},
			},
		},
	},
	{
		ID:           "aphid-outbreak",
		Title:        "Aphid Outbreak",
		Description:  "Scouts found aphid colonies spreading across the rows.",
		Foreshadow:   "Field scouts report aphids on the neighboring section.",
		LeadTicks:    3,
		CooldownDays: 42,
		Probability:  0.02,
		Predicate:    anyCropPlanted,
		Choices: []Choice{
			{
				ID:     "spray",
				Label:  "Spray the rows",
				Effect: ChoiceEffect{CashDelta: -800},
			},
			{
				ID:     "ladybugs",
				Label:  "Release ladybugs",
				Effect: ChoiceEffect{CashDelta: -300, Soil: farm.SoilDelta{OrganicMatter: 1}},
			},
		},
	},
	{
		ID:           "cannery-contract",
		Title:        "Cannery Contract Offer",
		Description:  "The regional cannery offers an advance against your standing crop.",
		Foreshadow:   "A buyer from the cannery has been asking about your acreage.",
		LeadTicks:    7,
		CooldownDays: 84,
		Probability:  0.01,
		Predicate:    anyCropPlanted,
		Choices: []Choice{
			{
				ID:     "sign",
				Label:  "Sign the contract",
				Effect: ChoiceEffect{CashDelta: 3000},
			},
			{
				ID:     "hold-out",
				Label:  "Hold out for spot prices",
				Effect: ChoiceEffect{},
			},
		},
	},
	{
		ID:           "county-forecast",
		Title:        "County Forecast Briefing",
		Description:  "The county agronomist offers a seasonal outlook and a cloud-seeding subscription.",
		Foreshadow:   "The county is circulating its seasonal forecast briefing.",
		LeadTicks:    1,
		CooldownDays: 28,
		Probability:  0.03,
		Choices: []Choice{
			{
				ID:    "cloud-seeding",
				Label: "Pay for cloud seeding",
				Effect: ChoiceEffect{
					CashDelta:   -1200,
					Soil:        farm.SoilDelta{Moisture: 10},
					CancelEvent: "summer-drought",
				},
			},
			{
				ID:     "file-away",
				Label:  "File it away",
				Effect: ChoiceEffect{},
			},
		},
	},
}

// findEventDef looks up a catalog entry by id.
func findEventDef(id string) (EventDef, bool) {
	for _, def := range eventCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return EventDef{}, false
}
