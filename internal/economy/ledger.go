// Package economy provides the cash ledger: transaction bookkeeping,
// the bankruptcy predicate, and loan servicing.
package economy

import "log/slog"

// TxKind is the business reason for a ledger entry.
type TxKind string

const (
	TxPlant         TxKind = "plant"
	TxWater         TxKind = "water"
	TxHarvest       TxKind = "harvest"
	TxEvent         TxKind = "event"
	TxLoanPrincipal TxKind = "loan_principal"
	TxLoanPayment   TxKind = "loan_payment"
)

// Transaction is a single row in the cash ledger.
type Transaction struct {
	Tick    uint64 `json:"tick"`
	Kind    TxKind `json:"kind"`
	Amount  int64  `json:"amount"` // signed; negative = debit
	Balance int64  `json:"balance"`
	Memo    string `json:"memo,omitempty"`
}

// maxTransactions bounds the retained log so long sessions don't grow
// without limit. Older entries roll off; cash is always authoritative.
const maxTransactions = 500

// Ledger tracks cash, the transaction log, active loans, and the
// running bankruptcy counters. It is pure state plus predicates; panel
// decisions belong to the engine.
type Ledger struct {
	Cash         int64         `json:"cash"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Loans        []Loan        `json:"loans,omitempty"`
	NegativeDays int           `json:"negative_days"` // consecutive ticks with cash < 0
	NextLoanID   int           `json:"next_loan_id"`
}

// NewLedger returns a ledger holding the starting bankroll.
func NewLedger(startingCash int64) *Ledger {
	return &Ledger{Cash: startingCash, NextLoanID: 1}
}

// CanAfford reports whether a debit of cost leaves cash non-negative.
func (l *Ledger) CanAfford(cost int64) bool {
	return l.Cash >= cost
}

// Apply posts a signed amount to the ledger and records the entry.
func (l *Ledger) Apply(tick uint64, kind TxKind, amount int64, memo string) {
	l.Cash += amount
	l.Transactions = append(l.Transactions, Transaction{
		Tick:    tick,
		Kind:    kind,
		Amount:  amount,
		Balance: l.Cash,
		Memo:    memo,
	})
	if len(l.Transactions) > maxTransactions {
		l.Transactions = l.Transactions[len(l.Transactions)-maxTransactions:]
	}
}

// AccrueLoans debits each active loan's daily payment and retires
// loans whose term has run out.
func (l *Ledger) AccrueLoans(tick uint64) {
	if len(l.Loans) == 0 {
		return
	}
	n := 0
	for i := range l.Loans {
		loan := &l.Loans[i]
		l.Apply(tick, TxLoanPayment, -loan.DailyPayment, loan.Memo())
		loan.RemainingDays--
		if loan.RemainingDays > 0 {
			l.Loans[n] = *loan
			n++
		} else {
			slog.Info("loan retired", "loan_id", loan.ID, "principal", loan.Principal)
		}
	}
	l.Loans = l.Loans[:n]
}

// TickBankruptcy updates the consecutive-negative-cash counter. Call
// once per tick after all accruals.
func (l *Ledger) TickBankruptcy() {
	if l.Cash < 0 {
		l.NegativeDays++
	} else {
		l.NegativeDays = 0
	}
}

// Bankrupt reports whether the bankruptcy condition holds: cash has
// been negative past the grace period, or the hard floor is breached.
func (l *Ledger) Bankrupt(graceDays int, hardFloor int64) bool {
	return l.HardFloorBreached(hardFloor) || l.NegativeDays > graceDays
}

// HardFloorBreached reports an immediate, grace-free breach.
func (l *Ledger) HardFloorBreached(hardFloor int64) bool {
	return l.Cash <= hardFloor
}

// ResetGrace restarts the grace period. Used when a loan offer is
// declined so the stress re-triggers later rather than every tick.
func (l *Ledger) ResetGrace() {
	l.NegativeDays = 0
}

// AcceptLoan injects principal into cash and appends the loan.
func (l *Ledger) AcceptLoan(tick uint64, principal int64, rate float64, termDays int) Loan {
	loan := NewLoan(l.NextLoanID, principal, rate, termDays)
	l.NextLoanID++
	l.Loans = append(l.Loans, loan)
	l.Apply(tick, TxLoanPrincipal, principal, loan.Memo())
	slog.Info("loan accepted",
		"loan_id", loan.ID,
		"principal", principal,
		"rate", rate,
		"term_days", termDays,
		"daily_payment", loan.DailyPayment,
	)
	return loan
}
