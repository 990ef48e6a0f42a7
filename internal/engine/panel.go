package engine

import "fmt"

// PanelKind tags the active panel variant. The zero value is "no
// panel"; the remaining kinds are listed in descending priority.
type PanelKind uint8

const (
	PanelNone PanelKind = iota
	PanelGameOver
	PanelEvent
	PanelLoanOffer
	PanelThreshold
)

// String returns the snapshot descriptor for the panel kind.
func (k PanelKind) String() string {
	switch k {
	case PanelNone:
		return "none"
	case PanelGameOver:
		return "game_over"
	case PanelEvent:
		return "event"
	case PanelLoanOffer:
		return "loan_offer"
	case PanelThreshold:
		return "threshold"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a defined panel kind.
func (k PanelKind) Valid() bool {
	return k <= PanelThreshold
}

// GameOverReason records why a session ended.
type GameOverReason string

const (
	GameOverYearCap    GameOverReason = "year_cap"
	GameOverBankruptcy GameOverReason = "bankruptcy"
)

// LoanOffer is the payload of a loan panel: the terms on the table.
type LoanOffer struct {
	Principal    int64   `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	TermDays     int     `json:"term_days"`
}

// Loan panel choice ids.
const (
	LoanAccept  = "accept"
	LoanDecline = "decline"
)

// ThresholdKind names a generic auto-pause trigger.
type ThresholdKind string

const (
	ThresholdHarvestReady ThresholdKind = "harvest_ready"
	ThresholdWaterStress  ThresholdKind = "water_stress"
)

// ThresholdNotice is the payload of a generic-threshold panel.
type ThresholdNotice struct {
	Kind    ThresholdKind `json:"kind"`
	Row     int           `json:"row"`
	Col     int           `json:"col"`
	Message string        `json:"message"`
}

// Threshold panel dismiss choice id.
const ThresholdDismiss = "dismiss"

// ActivePanel is the tagged union of auto-pause conditions. Exactly
// one variant is populated, matching Kind; illegal simultaneous-panel
// states are unrepresentable.
type ActivePanel struct {
	Kind           PanelKind        `json:"kind"`
	GameOverReason GameOverReason   `json:"game_over_reason,omitempty"`
	Occurrence     *Occurrence      `json:"occurrence,omitempty"`
	Loan           *LoanOffer       `json:"loan,omitempty"`
	Threshold      *ThresholdNotice `json:"threshold,omitempty"`
}

// None reports whether no panel is active.
func (p ActivePanel) None() bool {
	return p.Kind == PanelNone
}

// Validate checks the payload matches the tag. Used by save-file
// structural validation.
func (p ActivePanel) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("unknown panel kind %d", p.Kind)
	}
	switch p.Kind {
	case PanelGameOver:
		if p.GameOverReason == "" {
			return fmt.Errorf("game_over panel missing reason")
		}
	case PanelEvent:
		if p.Occurrence == nil {
			return fmt.Errorf("event panel missing occurrence")
		}
	case PanelLoanOffer:
		if p.Loan == nil {
			return fmt.Errorf("loan panel missing offer")
		}
	case PanelThreshold:
		if p.Threshold == nil {
			return fmt.Errorf("threshold panel missing notice")
		}
	}
	return nil
}

// surfacePanel promotes the highest-priority pending condition to the
// active panel. Checked in strict order: game over, event, loan,
// generic threshold. Lower-priority conditions stay pending and are
// re-examined after the current panel is dismissed.
func (g *Game) surfacePanel() {
	if !g.Panel.None() {
		return
	}

	switch {
	case g.PendingGameOver != "":
		g.Panel = ActivePanel{Kind: PanelGameOver, GameOverReason: g.PendingGameOver}
	case len(g.Events.Due) > 0:
		occ := g.Events.Due[0]
		g.Events.Due = g.Events.Due[1:]
		g.Panel = ActivePanel{Kind: PanelEvent, Occurrence: &occ}
	case g.PendingLoan:
		g.Panel = ActivePanel{Kind: PanelLoanOffer, Loan: &LoanOffer{
			Principal:    g.cfg.Economy.Loan.Principal,
			InterestRate: g.cfg.Economy.Loan.InterestRate,
			TermDays:     g.cfg.Economy.Loan.TermDays,
		}}
	case len(g.PendingThresholds) > 0:
		notice := g.PendingThresholds[0]
		g.PendingThresholds = g.PendingThresholds[1:]
		g.Panel = ActivePanel{Kind: PanelThreshold, Threshold: &notice}
	default:
		return
	}

	// Any surfaced panel stops the clock before the next tick.
	g.Speed = SpeedPaused
}
