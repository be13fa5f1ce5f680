package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaunchType indicates whether a launch credits or debits the ledger.
type LaunchType string

const (
	Credit LaunchType = "Crédito"
	Debit  LaunchType = "Débito"
)

// IsValid reports whether t is one of the two known launch types.
func (t LaunchType) IsValid() bool {
	switch t {
	case Credit, Debit:
		return true
	}
	return false
}

// Launch represents a single ledger entry.
// Amount is always non-negative; whether it adds to or subtracts from the
// balance is carried by Type, not by the sign of Amount.
// Date is stored and compared in UTC so month/year filtering stays stable
// between the write and read paths.
type Launch struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        LaunchType      `json:"type"`
	Date        time.Time       `json:"date"`
	AuditFields
}

// MonthSummary holds the aggregate credit and debit totals for a single
// (year, month) scope. It is derived on demand and never persisted.
type MonthSummary struct {
	TotalCredits decimal.Decimal `json:"totalCredits"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
}

// Balance returns total credits minus total debits.
func (s MonthSummary) Balance() decimal.Decimal {
	return s.TotalCredits.Sub(s.TotalDebits)
}
