package economy

import "fmt"

// Loan is an accepted bank loan repaid in equal daily installments.
type Loan struct {
	ID            int     `json:"id"`
	Principal     int64   `json:"principal"`
	InterestRate  float64 `json:"interest_rate"`
	TermDays      int     `json:"term_days"`
	RemainingDays int     `json:"remaining_days"`
	DailyPayment  int64   `json:"daily_payment"`
}

// NewLoan computes the repayment schedule: principal plus simple
// interest spread evenly over the term, rounded up so the bank never
// comes up short.
func NewLoan(id int, principal int64, rate float64, termDays int) Loan {
	total := float64(principal) * (1 + rate)
	daily := int64(total/float64(termDays)) + 1
	return Loan{
		ID:            id,
		Principal:     principal,
		InterestRate:  rate,
		TermDays:      termDays,
		RemainingDays: termDays,
		DailyPayment:  daily,
	}
}

// Memo returns the ledger memo line for this loan's entries.
func (l Loan) Memo() string {
	return fmt.Sprintf("loan #%d", l.ID)
}
