package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/contai-app/contai_backend/internal/apperrors"
	"github.com/contai-app/contai_backend/internal/core/domain"
	portsrepo "github.com/contai-app/contai_backend/internal/core/ports/repositories"
	"github.com/contai-app/contai_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLaunchRepository is the pgx-backed implementation of LaunchRepository.
type PgxLaunchRepository struct {
	BaseRepository
}

// NewLaunchRepository creates a new launch repository over the given pool.
func NewLaunchRepository(db *pgxpool.Pool) portsrepo.LaunchRepository {
	return &PgxLaunchRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LaunchRepository = (*PgxLaunchRepository)(nil)

func toModelLaunch(d domain.Launch) models.Launch {
	return models.Launch{
		ID:          d.ID,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        string(d.Type),
		Date:        d.Date,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainLaunch(m models.Launch) domain.Launch {
	return domain.Launch{
		ID:          m.ID,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        domain.LaunchType(m.Type),
		Date:        m.Date.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func toDomainLaunchSlice(ms []models.Launch) []domain.Launch {
	ds := make([]domain.Launch, len(ms))
	for i, m := range ms {
		ds[i] = toDomainLaunch(m)
	}
	return ds
}

func (r *PgxLaunchRepository) SaveLaunch(ctx context.Context, launch domain.Launch) (*domain.Launch, error) {
	modelLaunch := toModelLaunch(launch)
	query := `
        INSERT INTO launches (description, amount, launch_type, launch_date, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING launch_id;
    `
	err := r.Pool.QueryRow(ctx, query,
		modelLaunch.Description,
		modelLaunch.Amount,
		modelLaunch.Type,
		modelLaunch.Date,
		modelLaunch.CreatedAt,
		modelLaunch.LastUpdatedAt,
	).Scan(&modelLaunch.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save launch: %w", err)
	}

	domainLaunch := toDomainLaunch(modelLaunch)
	return &domainLaunch, nil
}

func (r *PgxLaunchRepository) FindLaunchByID(ctx context.Context, launchID int64) (*domain.Launch, error) {
	query := `
		SELECT launch_id, description, amount, launch_type, launch_date, created_at, last_updated_at
		FROM launches
		WHERE launch_id = $1;
	`
	var modelLaunch models.Launch
	err := r.Pool.QueryRow(ctx, query, launchID).Scan(
		&modelLaunch.ID,
		&modelLaunch.Description,
		&modelLaunch.Amount,
		&modelLaunch.Type,
		&modelLaunch.Date,
		&modelLaunch.CreatedAt,
		&modelLaunch.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find launch by ID %d: %w", launchID, err)
	}

	domainLaunch := toDomainLaunch(modelLaunch)
	return &domainLaunch, nil
}

func (r *PgxLaunchRepository) FindLaunches(ctx context.Context) ([]domain.Launch, error) {
	query := `
        SELECT launch_id, description, amount, launch_type, launch_date, created_at, last_updated_at
        FROM launches
        ORDER BY launch_id;
    `
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query launches: %w", err)
	}
	defer rows.Close()

	return scanLaunchRows(rows)
}

func (r *PgxLaunchRepository) FindLaunchesByMonth(ctx context.Context, year int, month int) ([]domain.Launch, error) {
	// The UTC conversion keeps month classification consistent with the
	// write path regardless of the session time zone.
	query := `
        SELECT launch_id, description, amount, launch_type, launch_date, created_at, last_updated_at
        FROM launches
        WHERE EXTRACT(YEAR FROM launch_date AT TIME ZONE 'UTC') = $1
          AND EXTRACT(MONTH FROM launch_date AT TIME ZONE 'UTC') = $2
        ORDER BY launch_date ASC;
    `
	rows, err := r.Pool.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query launches for %d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	return scanLaunchRows(rows)
}

func (r *PgxLaunchRepository) UpdateLaunch(ctx context.Context, launch domain.Launch) error {
	modelLaunch := toModelLaunch(launch)
	query := `
        UPDATE launches
        SET description = $1, amount = $2, launch_type = $3, launch_date = $4, last_updated_at = $5
        WHERE launch_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelLaunch.Description,
		modelLaunch.Amount,
		modelLaunch.Type,
		modelLaunch.Date,
		modelLaunch.LastUpdatedAt,
		modelLaunch.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update launch query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("launch not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLaunchRepository) DeleteLaunch(ctx context.Context, launchID int64) error {
	query := `DELETE FROM launches WHERE launch_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, launchID)
	if err != nil {
		return fmt.Errorf("failed to delete launch %d: %w", launchID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("launch not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLaunchRepository) SummarizeMonth(ctx context.Context, year int, month int) (*domain.MonthSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN launch_type = 'Crédito' THEN amount ELSE 0 END), 0) AS total_credits,
			COALESCE(SUM(CASE WHEN launch_type = 'Débito' THEN amount ELSE 0 END), 0) AS total_debits
		FROM launches
		WHERE EXTRACT(YEAR FROM launch_date AT TIME ZONE 'UTC') = $1
		  AND EXTRACT(MONTH FROM launch_date AT TIME ZONE 'UTC') = $2;
	`
	var summary domain.MonthSummary
	err := r.Pool.QueryRow(ctx, query, year, month).Scan(
		&summary.TotalCredits,
		&summary.TotalDebits,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %d-%02d: %w", year, month, err)
	}
	return &summary, nil
}

func scanLaunchRows(rows pgx.Rows) ([]domain.Launch, error) {
	modelLaunches := []models.Launch{}
	for rows.Next() {
		var modelLaunch models.Launch
		err := rows.Scan(
			&modelLaunch.ID,
			&modelLaunch.Description,
			&modelLaunch.Amount,
			&modelLaunch.Type,
			&modelLaunch.Date,
			&modelLaunch.CreatedAt,
			&modelLaunch.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan launch row: %w", err)
		}
		modelLaunches = append(modelLaunches, modelLaunch)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating launch rows: %w", rows.Err())
	}
	return toDomainLaunchSlice(modelLaunches), nil
}
