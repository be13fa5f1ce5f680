package accounting

import (
	"fmt"

	"github.com/contai-app/contai_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummarizeLaunches computes credit and debit totals over a set of launches.
// An empty input yields zero totals. The summation is linear: summarizing
// two disjoint sets and adding the results equals summarizing their union.
func SummarizeLaunches(launches []domain.Launch) (domain.MonthSummary, error) {
	summary := domain.MonthSummary{
		TotalCredits: decimal.Zero,
		TotalDebits:  decimal.Zero,
	}

	for _, launch := range launches {
		switch launch.Type {
		case domain.Credit:
			summary.TotalCredits = summary.TotalCredits.Add(launch.Amount)
		case domain.Debit:
			summary.TotalDebits = summary.TotalDebits.Add(launch.Amount)
		default:
			return domain.MonthSummary{}, fmt.Errorf("unknown launch type %q for launch ID %d", launch.Type, launch.ID)
		}
	}

	return summary, nil
}
