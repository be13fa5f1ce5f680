package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contai-app/contai_backend/internal/apperrors"
	"github.com/contai-app/contai_backend/internal/core/domain"
	portsrepo "github.com/contai-app/contai_backend/internal/core/ports/repositories"
	portssvc "github.com/contai-app/contai_backend/internal/core/ports/services"
	"github.com/contai-app/contai_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LaunchService implements the ledger operations on top of a LaunchRepository.
type LaunchService struct {
	launchRepo portsrepo.LaunchRepository
}

// NewLaunchService creates a new LaunchService.
func NewLaunchService(launchRepo portsrepo.LaunchRepository) *LaunchService {
	return &LaunchService{launchRepo: launchRepo}
}

var _ portssvc.LaunchSvcFacade = (*LaunchService)(nil)

// CreateLaunch validates the request and persists a new launch.
func (s *LaunchService) CreateLaunch(ctx context.Context, req dto.CreateLaunchRequest) (*domain.Launch, error) {
	if strings.TrimSpace(req.Description) == "" || req.Amount.IsZero() || req.Date == "" || req.Type == "" {
		return nil, fmt.Errorf("%w: all fields are required: description, amount, date, type", apperrors.ErrValidation)
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: type must be %q or %q", apperrors.ErrValidation, domain.Credit, domain.Debit)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
	}

	date, err := dto.ParseLaunchDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q: %v", apperrors.ErrValidation, req.Date, err)
	}

	now := time.Now().UTC()
	launch := domain.Launch{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	created, err := s.launchRepo.SaveLaunch(ctx, launch)
	if err != nil {
		return nil, fmt.Errorf("failed to create launch: %w", err)
	}
	return created, nil
}

// GetLaunchByID fetches a single launch.
func (s *LaunchService) GetLaunchByID(ctx context.Context, launchID int64) (*domain.Launch, error) {
	launch, err := s.launchRepo.FindLaunchByID(ctx, launchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get launch %d: %w", launchID, err)
	}
	return launch, nil
}

// ListLaunches returns every launch in the ledger.
func (s *LaunchService) ListLaunches(ctx context.Context) ([]domain.Launch, error) {
	launches, err := s.launchRepo.FindLaunches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}
	return launches, nil
}

// ListLaunchesByMonth returns the launches for one UTC calendar month,
// ordered by date ascending. An empty month yields an empty slice.
func (s *LaunchService) ListLaunchesByMonth(ctx context.Context, year int, month int) ([]domain.Launch, error) {
	launches, err := s.launchRepo.FindLaunchesByMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches for %d-%02d: %w", year, month, err)
	}
	return launches, nil
}

// UpdateLaunch applies a partial update onto the stored launch. Fields absent
// from the request keep their stored values. The merge is read-then-write
// with no row locking, so concurrent updates to the same launch are
// last-write-wins.
func (s *LaunchService) UpdateLaunch(ctx context.Context, launchID int64, req dto.UpdateLaunchRequest) (*domain.Launch, error) {
	launch, err := s.launchRepo.FindLaunchByID(ctx, launchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find launch %d for update: %w", launchID, err)
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
		}
		launch.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
		}
		launch.Amount = *req.Amount
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, fmt.Errorf("%w: type must be %q or %q", apperrors.ErrValidation, domain.Credit, domain.Debit)
		}
		launch.Type = *req.Type
	}
	if req.Date != nil {
		date, err := dto.ParseLaunchDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q: %v", apperrors.ErrValidation, *req.Date, err)
		}
		launch.Date = date
	}
	launch.LastUpdatedAt = time.Now().UTC()

	if err := s.launchRepo.UpdateLaunch(ctx, *launch); err != nil {
		return nil, fmt.Errorf("failed to update launch %d: %w", launchID, err)
	}
	return launch, nil
}

// DeleteLaunch removes a launch permanently.
func (s *LaunchService) DeleteLaunch(ctx context.Context, launchID int64) error {
	if err := s.launchRepo.DeleteLaunch(ctx, launchID); err != nil {
		return fmt.Errorf("failed to delete launch %d: %w", launchID, err)
	}
	return nil
}

// GetMonthSummary returns the credit/debit totals for one UTC calendar
// month. Aggregation happens in the database; this is the single
// authoritative source for summary figures.
func (s *LaunchService) GetMonthSummary(ctx context.Context, year int, month int) (*domain.MonthSummary, error) {
	summary, err := s.launchRepo.SummarizeMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %d-%02d: %w", year, month, err)
	}
	if summary == nil {
		summary = &domain.MonthSummary{TotalCredits: decimal.Zero, TotalDebits: decimal.Zero}
	}
	return summary, nil
}
