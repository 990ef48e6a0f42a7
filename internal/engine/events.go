package engine

import (
	"log/slog"

	"github.com/talgya/farmstead/internal/economy"
	"github.com/talgya/farmstead/internal/farm"
)

// ChoiceEffect is the deterministic outcome of resolving an event
// choice. All fields apply atomically.
type ChoiceEffect struct {
	CashDelta    int64          `json:"cash_delta,omitempty"`
	Soil         farm.SoilDelta `json:"soil,omitempty"`          // applied field-wide
	DestroyCrops bool           `json:"destroy_crops,omitempty"` // clears every crop slot
	CancelEvent  string         `json:"cancel_event,omitempty"`  // drops a pending foreshadowed occurrence
}

// Choice is one player option on an event panel.
type Choice struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Effect ChoiceEffect `json:"effect"`
}

// EventDef is a static catalog entry. Catalog order is priority order
// when multiple occurrences come due on the same tick.
type EventDef struct {
	ID           string
	Title        string
	Description  string
	Foreshadow   string  // non-blocking notice emitted at schedule time
	LeadTicks    uint64  // delay between scheduling and the occurrence becoming active
	CooldownDays uint64  // minimum ticks between schedulings of the same event
	Probability  float64 // per-tick draw once the predicate holds
	Predicate    func(*Game) bool
	Choices      []Choice
}

// Occurrence is the runtime instance pushed onto the panel. It is
// self-contained (no predicate functions) so it serializes cleanly.
type Occurrence struct {
	EventID     string   `json:"event_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Choices     []Choice `json:"choices"`
	DueTick     uint64   `json:"due_tick"`
}

// PendingOccurrence is a foreshadowed event waiting out its lead time.
type PendingOccurrence struct {
	EventID string `json:"event_id"`
	DueTick uint64 `json:"due_tick"`
}

// EventClock holds all runtime event state: foreshadowed occurrences,
// the due queue, and per-event cooldown bookkeeping.
type EventClock struct {
	Pending   []PendingOccurrence `json:"pending,omitempty"`
	Due       []Occurrence        `json:"due,omitempty"`
	LastFired map[string]uint64   `json:"last_fired,omitempty"`
}

func (c *EventClock) pendingFor(eventID string) bool {
	for _, p := range c.Pending {
		if p.EventID == eventID {
			return true
		}
	}
	return false
}

// cancelPending drops a foreshadowed occurrence by event id. Returns
// true when something was removed.
func (c *EventClock) cancelPending(eventID string) bool {
	n := 0
	removed := false
	for _, p := range c.Pending {
		if p.EventID == eventID {
			removed = true
			continue
		}
		c.Pending[n] = p
		n++
	}
	c.Pending = c.Pending[:n]
	return removed
}

// evaluateEvents runs one tick of the event pipeline: schedule newly
// triggered occurrences with their foreshadow lead, then move due
// occurrences onto the queue in catalog priority order.
func (g *Game) evaluateEvents() {
	for _, def := range eventCatalog {
		if g.Events.pendingFor(def.ID) {
			continue
		}
		if last, ok := g.Events.LastFired[def.ID]; ok && g.Tick-last < def.CooldownDays {
			continue
		}
		if def.Predicate != nil && !def.Predicate(g) {
			continue
		}
		if g.RNG.Float64() >= def.Probability {
			continue
		}

		due := g.Tick + def.LeadTicks
		g.Events.Pending = append(g.Events.Pending, PendingOccurrence{EventID: def.ID, DueTick: due})
		if g.Events.LastFired == nil {
			g.Events.LastFired = make(map[string]uint64)
		}
		g.Events.LastFired[def.ID] = g.Tick

		// Foreshadowing: advance notice only, the clock keeps running.
		g.emitNotice("event", def.Foreshadow)
		slog.Info("event scheduled", "event", def.ID, "tick", g.Tick, "due_tick", due)
	}

	// Promote due occurrences, preserving catalog order for same-tick
	// collisions so priority is stable.
	for _, def := range eventCatalog {
		n := 0
		for _, p := range g.Events.Pending {
			if p.EventID == def.ID && p.DueTick <= g.Tick {
				g.Events.Due = append(g.Events.Due, Occurrence{
					EventID:     def.ID,
					Title:       def.Title,
					Description: def.Description,
					Choices:     def.Choices,
					DueTick:     p.DueTick,
				})
				continue
			}
			g.Events.Pending[n] = p
			n++
		}
		g.Events.Pending = g.Events.Pending[:n]
	}
}

// applyChoice executes a choice effect atomically.
func (g *Game) applyChoice(occ *Occurrence, choice Choice) {
	eff := choice.Effect

	if eff.CashDelta != 0 {
		g.Ledger.Apply(g.Tick, economy.TxEvent, eff.CashDelta, occ.EventID)
	}
	if !eff.Soil.IsZero() {
		g.Grid.Each(func(c *farm.Cell) {
			c.Soil.Apply(eff.Soil)
		})
	}
	if eff.DestroyCrops {
		destroyed := 0
		g.Grid.Each(func(c *farm.Cell) {
			if c.Crop != nil {
				c.Crop = nil
				c.StressDays = 0
				destroyed++
			}
		})
		if destroyed > 0 {
			g.emitNotice("event", "The field is wiped out.")
		}
	}
	if eff.CancelEvent != "" && g.Events.cancelPending(eff.CancelEvent) {
		g.emitNotice("event", "A looming threat passes the valley by.")
	}

	slog.Info("event resolved",
		"event", occ.EventID,
		"choice", choice.ID,
		"cash", g.Ledger.Cash,
	)
}
