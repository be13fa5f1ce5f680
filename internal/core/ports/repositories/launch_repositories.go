package repositories

import (
	"context"

	"github.com/contai-app/contai_backend/internal/core/domain"
)

// LaunchRepository defines persistence operations for launches.
type LaunchRepository interface {
	// SaveLaunch persists a new launch and returns it with its generated ID.
	SaveLaunch(ctx context.Context, launch domain.Launch) (*domain.Launch, error)
	// FindLaunchByID returns the launch with the given ID, or apperrors.ErrNotFound.
	FindLaunchByID(ctx context.Context, launchID int64) (*domain.Launch, error)
	// FindLaunches returns every launch in the ledger.
	FindLaunches(ctx context.Context) ([]domain.Launch, error)
	// FindLaunchesByMonth returns launches whose UTC calendar date falls in
	// the given year and month, ordered by date ascending.
	FindLaunchesByMonth(ctx context.Context, year int, month int) ([]domain.Launch, error)
	// UpdateLaunch persists the full row for an existing launch.
	// Returns apperrors.ErrNotFound if the ID has no matching row.
	UpdateLaunch(ctx context.Context, launch domain.Launch) error
	// DeleteLaunch removes the row. Returns apperrors.ErrNotFound if absent.
	DeleteLaunch(ctx context.Context, launchID int64) error
	// SummarizeMonth computes credit/debit totals for the given year and
	// month in the database. Months with no launches yield zero totals.
	SummarizeMonth(ctx context.Context, year int, month int) (*domain.MonthSummary, error)
}
