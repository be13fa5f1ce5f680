package models

import "time"

// AuditFields holds standard audit columns shared by persistence models.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
