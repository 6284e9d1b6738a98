package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type AlertRepository interface {
	Create(ctx context.Context, a *models.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Alert, error)

	ListAll(ctx context.Context) ([]*models.Alert, error)
	ListByDistrict(ctx context.Context, district string) ([]*models.Alert, error)
	ListByProjectIDs(ctx context.Context, projectIDs []uuid.UUID) ([]*models.Alert, error)

	// HasActiveForProject lets the monitor scan avoid stacking
	// duplicate alerts of the same type on one project.
	HasActiveForProject(ctx context.Context, projectID uuid.UUID, alertType models.AlertTypeType) (bool, error)

	// ResolveAtomic moves active → resolved and stamps resolved_at,
	// conditioned on the stored status still being active.
	ResolveAtomic(ctx context.Context, alertID uuid.UUID) (*models.Alert, error)
}

type alertRepo struct {
	db DB
}

func NewAlertRepository(db DB) AlertRepository {
	return &alertRepo{db: db}
}

func baseSelectAlert() string {
	return `
        SELECT
            id, project_id, district, alert_type, severity, status,
            title, description, resolved_at,
            row_version, created_at
        FROM alerts
    `
}

func scanAlert(row pgx.Row) (*models.Alert, error) {
	var a models.Alert
	var resolvedAt *time.Time
	err := row.Scan(
		&a.ID,
		&a.ProjectID,
		&a.District,
		&a.AlertType,
		&a.Severity,
		&a.Status,
		&a.Title,
		&a.Description,
		&resolvedAt,
		&a.RowVersion,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.ResolvedAt = resolvedAt
	return &a, nil
}

func (r *alertRepo) Create(ctx context.Context, a *models.Alert) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO alerts (
            id, project_id, district, alert_type, severity, status,
            title, description, created_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,'active',$6,$7,NOW(),1
        )
    `,
		a.ID,
		a.ProjectID,
		a.District,
		a.AlertType,
		a.Severity,
		a.Title,
		a.Description,
	)
	return err
}

func (r *alertRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	row := r.db.QueryRow(ctx, baseSelectAlert()+" WHERE id=$1", id)
	return scanAlert(row)
}

func (r *alertRepo) listWhere(ctx context.Context, where string, args ...interface{}) ([]*models.Alert, error) {
	rows, err := r.db.Query(ctx, baseSelectAlert()+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Alert{}
	for rows.Next() {
		a, scanErr := scanAlert(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *alertRepo) ListAll(ctx context.Context) ([]*models.Alert, error) {
	return r.listWhere(ctx, "")
}

func (r *alertRepo) ListByDistrict(ctx context.Context, district string) ([]*models.Alert, error) {
	return r.listWhere(ctx, " WHERE district=$1", district)
}

func (r *alertRepo) ListByProjectIDs(ctx context.Context, projectIDs []uuid.UUID) ([]*models.Alert, error) {
	if len(projectIDs) == 0 {
		return []*models.Alert{}, nil
	}
	return r.listWhere(ctx, " WHERE project_id = ANY($1)", projectIDs)
}

func (r *alertRepo) HasActiveForProject(
	ctx context.Context,
	projectID uuid.UUID,
	alertType models.AlertTypeType,
) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM alerts
        WHERE project_id=$1 AND alert_type=$2 AND status='active'
    `, projectID, alertType).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *alertRepo) ResolveAtomic(ctx context.Context, alertID uuid.UUID) (*models.Alert, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectAlert()+" WHERE id=$1 FOR UPDATE", alertID)
	a, err := scanAlert(row)
	if err != nil {
		return nil, err
	}
	if a == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if a.Status != models.AlertStatusActive {
		err = utils.ErrWrongStatus
		return a, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE alerts
        SET status='resolved', resolved_at=NOW(),
            row_version=row_version+1
        WHERE id=$1
    `, alertID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectAlert()+" WHERE id=$1", alertID)
	return scanAlert(newRow)
}
