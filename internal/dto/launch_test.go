package dto_test

import (
	"testing"
	"time"

	"github.com/contai-app/contai_backend/internal/core/domain"
	"github.com/contai-app/contai_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLaunchDate_CanonicalForm(t *testing.T) {
	parsed, err := dto.ParseLaunchDate("2024-03-05")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), parsed)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestParseLaunchDate_RFC3339IsNormalizedToUTC(t *testing.T) {
	parsed, err := dto.ParseLaunchDate("2024-03-05T22:30:00-03:00")
	require.NoError(t, err)

	// 22:30 in UTC-3 is already March 6th in UTC; the month filter must see
	// the UTC calendar date.
	assert.Equal(t, time.UTC, parsed.Location())
	assert.Equal(t, 6, parsed.Day())
	assert.Equal(t, time.March, parsed.Month())
}

func TestParseLaunchDate_RejectsOtherFormats(t *testing.T) {
	_, err := dto.ParseLaunchDate("05/03/2024")
	assert.Error(t, err)
}

func TestToLaunchResponse_CanonicalAmountAndDate(t *testing.T) {
	launch := &domain.Launch{
		ID:          7,
		Description: "Salário",
		Amount:      decimal.RequireFromString("1000"),
		Type:        domain.Credit,
		Date:        time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
	}

	resp := dto.ToLaunchResponse(launch)

	assert.Equal(t, "1000.00", resp.Amount)
	assert.Equal(t, "2024-03-05", resp.Date)
	assert.Equal(t, domain.Credit, resp.Type)
}
