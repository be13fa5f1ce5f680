package dto

import (
	"time"

	"github.com/contai-app/contai_backend/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// launchDateLayout is the canonical wire format for launch dates.
const launchDateLayout = "2006-01-02"

// CreateLaunchRequest defines the payload for creating a launch.
// All fields are required; a zero amount is treated as missing, matching the
// store-level contract that every launch carries a meaningful value.
type CreateLaunchRequest struct {
	Description string            `json:"description" binding:"required"`
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	Type        domain.LaunchType `json:"type" binding:"required,oneof=Crédito Débito"`
	Date        string            `json:"date" binding:"required,launchdate"`
}

// UpdateLaunchRequest defines the payload for a partial update.
// Pointers distinguish omitted fields from zero-value fields; only present
// fields are applied onto the stored launch.
type UpdateLaunchRequest struct {
	Description *string            `json:"description" binding:"omitempty"`
	Amount      *decimal.Decimal   `json:"amount" binding:"omitempty"`
	Type        *domain.LaunchType `json:"type" binding:"omitempty,oneof=Crédito Débito"`
	Date        *string            `json:"date" binding:"omitempty,launchdate"`
}

// MonthParams defines the year/month query parameters shared by the
// by-month, summary and statement endpoints. Both are required.
type MonthParams struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// LaunchResponse is the wire representation of a launch. Amount is a
// fixed-point decimal string with two fractional digits; Date is YYYY-MM-DD.
type LaunchResponse struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	Amount      string            `json:"amount"`
	Type        domain.LaunchType `json:"type"`
	Date        string            `json:"date"`
}

// MonthSummaryResponse carries the aggregate totals for one month.
// Key names follow the established wire contract.
type MonthSummaryResponse struct {
	TotalCredits string `json:"total_creditos"`
	TotalDebits  string `json:"total_debitos"`
}

// ToLaunchResponse converts a domain.Launch to its wire representation.
func ToLaunchResponse(launch *domain.Launch) LaunchResponse {
	return LaunchResponse{
		ID:          launch.ID,
		Description: launch.Description,
		Amount:      launch.Amount.StringFixed(2),
		Type:        launch.Type,
		Date:        launch.Date.UTC().Format(launchDateLayout),
	}
}

// ToListLaunchResponse converts a slice of domain launches, preserving order.
func ToListLaunchResponse(launches []domain.Launch) []LaunchResponse {
	responses := make([]LaunchResponse, len(launches))
	for i := range launches {
		responses[i] = ToLaunchResponse(&launches[i])
	}
	return responses
}

// ToMonthSummaryResponse converts a domain.MonthSummary to its wire form.
func ToMonthSummaryResponse(summary *domain.MonthSummary) MonthSummaryResponse {
	return MonthSummaryResponse{
		TotalCredits: summary.TotalCredits.StringFixed(2),
		TotalDebits:  summary.TotalDebits.StringFixed(2),
	}
}

// ParseLaunchDate parses a wire date into a UTC timestamp. It accepts the
// canonical YYYY-MM-DD form and, for compatibility with clients sending full
// timestamps, RFC 3339. The result is normalized to UTC so month filtering
// uses the same calendar fields on the write and read paths.
func ParseLaunchDate(value string) (time.Time, error) {
	if t, err := time.Parse(launchDateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// RegisterCustomValidations registers launch-specific validations on the
// binding engine. Currently only "launchdate", which accepts the formats
// understood by ParseLaunchDate.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("launchdate", func(fl validator.FieldLevel) bool {
		_, err := ParseLaunchDate(fl.Field().String())
		return err == nil
	})
}
