package services

import (
	"context"

	"github.com/contai-app/contai_backend/internal/core/domain"
	"github.com/contai-app/contai_backend/internal/dto"
)

// LaunchSvcFacade defines the service-level operations over the ledger.
type LaunchSvcFacade interface {
	CreateLaunch(ctx context.Context, req dto.CreateLaunchRequest) (*domain.Launch, error)
	GetLaunchByID(ctx context.Context, launchID int64) (*domain.Launch, error)
	ListLaunches(ctx context.Context) ([]domain.Launch, error)
	ListLaunchesByMonth(ctx context.Context, year int, month int) ([]domain.Launch, error)
	UpdateLaunch(ctx context.Context, launchID int64, req dto.UpdateLaunchRequest) (*domain.Launch, error)
	DeleteLaunch(ctx context.Context, launchID int64) error
	GetMonthSummary(ctx context.Context, year int, month int) (*domain.MonthSummary, error)
}
