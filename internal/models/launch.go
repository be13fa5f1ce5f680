package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Launch is the persistence model for a ledger entry, mapped onto the
// launches table.
type Launch struct {
	ID          int64           `db:"launch_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"launch_type"`
	Date        time.Time       `db:"launch_date"`
	AuditFields
}
