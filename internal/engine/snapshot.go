package engine

import (
	"github.com/dustin/go-humanize"

	"github.com/talgya/farmstead/internal/economy"
	"github.com/talgya/farmstead/internal/farm"
)

// Snapshot is the immutable read model published to the presentation
// layer after every settled tick or command. The UI holds no other
// copy of engine state.
type Snapshot struct {
	PlayerID    string         `json:"player_id"`
	Tick        uint64         `json:"tick"`
	Date        string         `json:"date"`
	Season      string         `json:"season"`
	Year        int            `json:"year"`
	Cash        int64          `json:"cash"`
	CashDisplay string         `json:"cash_display"`
	Speed       string         `json:"speed"`
	GameOver    bool           `json:"game_over"`
	Cells       []CellView     `json:"cells"`
	Panel       PanelView      `json:"panel"`
	Loans       []economy.Loan `json:"loans,omitempty"`
	Notices     []Notice       `json:"notices,omitempty"`
}

// CellView is the per-plot read model.
type CellView struct {
	Row           int     `json:"row"`
	Col           int     `json:"col"`
	Crop          string  `json:"crop"` // catalog name or "Empty"
	Stage         int     `json:"stage"`
	Stages        int     `json:"stages"`
	Ready         bool    `json:"ready"`
	Stressed      bool    `json:"stressed"`
	Nitrogen      float64 `json:"nitrogen"`
	Moisture      float64 `json:"moisture"`
	OrganicMatter float64 `json:"organic_matter"`
}

// PanelView is the active panel descriptor: kind plus the payload the
// UI needs to render it.
type PanelView struct {
	Kind           string           `json:"kind"`
	GameOverReason GameOverReason   `json:"game_over_reason,omitempty"`
	Occurrence     *Occurrence      `json:"occurrence,omitempty"`
	Loan           *LoanOffer       `json:"loan,omitempty"`
	Threshold      *ThresholdNotice `json:"threshold,omitempty"`
}

// snapshotNotices is how much of the feed a snapshot carries.
const snapshotNotices = 10

// Snapshot builds the current read model. Payload pointers are copied
// so later engine mutation can't reach a published snapshot.
func (g *Game) Snapshot() Snapshot {
	cells := make([]CellView, 0, farm.CellCount)
	g.Grid.Each(func(c *farm.Cell) {
		view := CellView{
			Row:           c.Row,
			Col:           c.Col,
			Crop:          "Empty",
			Stressed:      c.StressDays > 0,
			Nitrogen:      c.Soil.Nitrogen,
			Moisture:      c.Soil.Moisture,
			OrganicMatter: c.Soil.OrganicMatter,
		}
		if c.Crop != nil {
			view.Crop = c.Crop.Type.String()
			view.Stage = c.Crop.Stage
			view.Stages = farm.Spec(c.Crop.Type).Stages()
			view.Ready = c.Crop.Ready()
		}
		cells = append(cells, view)
	})

	panel := PanelView{Kind: g.Panel.Kind.String(), GameOverReason: g.Panel.GameOverReason}
	if g.Panel.Occurrence != nil {
		occ := *g.Panel.Occurrence
		panel.Occurrence = &occ
	}
	if g.Panel.Loan != nil {
		loan := *g.Panel.Loan
		panel.Loan = &loan
	}
	if g.Panel.Threshold != nil {
		threshold := *g.Panel.Threshold
		panel.Threshold = &threshold
	}

	notices := g.Notices
	if len(notices) > snapshotNotices {
		notices = notices[len(notices)-snapshotNotices:]
	}

	return Snapshot{
		PlayerID:    g.PlayerID,
		Tick:        g.Tick,
		Date:        g.Date.String(),
		Season:      g.Date.Season.String(),
		Year:        g.Date.Year,
		Cash:        g.Ledger.Cash,
		CashDisplay: humanize.Comma(g.Ledger.Cash),
		Speed:       g.Speed.String(),
		GameOver:    g.Over(),
		Cells:       cells,
		Panel:       panel,
		Loans:       append([]economy.Loan(nil), g.Ledger.Loans...),
		Notices:     append([]Notice(nil), notices...),
	}
}
