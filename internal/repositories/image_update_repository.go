package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/rohitpal119/district-state-watch/internal/models"
)

// ImageUpdateRepository is append-only: rows are never updated or
// deleted once written.
type ImageUpdateRepository interface {
	Create(ctx context.Context, iu *models.ImageUpdate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ImageUpdate, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ImageUpdate, error)
	ListByContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.ImageUpdate, error)
}

type imageUpdateRepo struct {
	db DB
}

func NewImageUpdateRepository(db DB) ImageUpdateRepository {
	return &imageUpdateRepo{db: db}
}

func baseSelectImageUpdate() string {
	return `
        SELECT
            id, project_id, contractor_id, image_type, image_url,
            description, created_at
        FROM project_image_updates
    `
}

func scanImageUpdate(row pgx.Row) (*models.ImageUpdate, error) {
	var iu models.ImageUpdate
	err := row.Scan(
		&iu.ID,
		&iu.ProjectID,
		&iu.ContractorID,
		&iu.ImageType,
		&iu.ImageURL,
		&iu.Description,
		&iu.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &iu, nil
}

func (r *imageUpdateRepo) Create(ctx context.Context, iu *models.ImageUpdate) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO project_image_updates (
            id, project_id, contractor_id, image_type, image_url,
            description, created_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,NOW()
        )
    `,
		iu.ID,
		iu.ProjectID,
		iu.ContractorID,
		iu.ImageType,
		iu.ImageURL,
		iu.Description,
	)
	return err
}

func (r *imageUpdateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ImageUpdate, error) {
	row := r.db.QueryRow(ctx, baseSelectImageUpdate()+" WHERE id=$1", id)
	return scanImageUpdate(row)
}

func (r *imageUpdateRepo) list(ctx context.Context, where string, args ...interface{}) ([]*models.ImageUpdate, error) {
	rows, err := r.db.Query(ctx, baseSelectImageUpdate()+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.ImageUpdate{}
	for rows.Next() {
		iu, scanErr := scanImageUpdate(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, iu)
	}
	return out, rows.Err()
}

func (r *imageUpdateRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ImageUpdate, error) {
	return r.list(ctx, " WHERE project_id=$1", projectID)
}

func (r *imageUpdateRepo) ListByContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.ImageUpdate, error) {
	return r.list(ctx, " WHERE contractor_id=$1", contractorID)
}
