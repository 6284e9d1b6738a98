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

type ProjectRepository interface {
	Create(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)

	ListAll(ctx context.Context) ([]*models.Project, error)
	ListByDistrict(ctx context.Context, district string) ([]*models.Project, error)
	ListByContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.Project, error)
	ListAvailable(ctx context.Context) ([]*models.Project, error)

	// AssignContractorAtomic claims an unassigned ongoing project for
	// a contractor. The precondition (contractor_id IS NULL AND
	// status='ongoing') is re-checked inside the transaction so two
	// contractors cannot claim the same project.
	AssignContractorAtomic(ctx context.Context, projectID, contractorID uuid.UUID) (*models.Project, error)

	// UpdateProgressAtomic records a contractor progress report,
	// conditioned on the row version the caller read.
	UpdateProgressAtomic(ctx context.Context, projectID uuid.UUID, expectedVersion int64, completion int, status models.ProjectStatusType) (*models.Project, error)
}

type projectRepo struct {
	db DB
}

func NewProjectRepository(db DB) ProjectRepository {
	return &projectRepo{db: db}
}

func baseSelectProject() string {
	return `
        SELECT
            id, name, district, agency, contractor_id,
            budget_allocated, fund_utilized, completion_percentage,
            status, start_date, end_date,
            row_version, created_at, updated_at
        FROM projects
    `
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	var endDate *time.Time
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.District,
		&p.Agency,
		&p.ContractorID,
		&p.BudgetAllocated,
		&p.FundUtilized,
		&p.CompletionPercentage,
		&p.Status,
		&p.StartDate,
		&endDate,
		&p.RowVersion,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.EndDate = endDate
	return &p, nil
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO projects (
            id, name, district, agency, contractor_id,
            budget_allocated, fund_utilized, completion_percentage,
            status, start_date, end_date,
            created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW(),1
        )
    `,
		p.ID,
		p.Name,
		p.District,
		p.Agency,
		p.ContractorID,
		p.BudgetAllocated,
		p.FundUtilized,
		p.CompletionPercentage,
		p.Status,
		p.StartDate,
		p.EndDate,
	)
	return err
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	row := r.db.QueryRow(ctx, baseSelectProject()+" WHERE id=$1", id)
	return scanProject(row)
}

func (r *projectRepo) listWhere(ctx context.Context, where string, args ...interface{}) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, baseSelectProject()+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Project{}
	for rows.Next() {
		p, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectRepo) ListAll(ctx context.Context) ([]*models.Project, error) {
	return r.listWhere(ctx, "")
}

func (r *projectRepo) ListByDistrict(ctx context.Context, district string) ([]*models.Project, error) {
	return r.listWhere(ctx, " WHERE district=$1", district)
}

func (r *projectRepo) ListByContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.Project, error) {
	return r.listWhere(ctx, " WHERE contractor_id=$1", contractorID)
}

func (r *projectRepo) ListAvailable(ctx context.Context) ([]*models.Project, error) {
	return r.listWhere(ctx, " WHERE contractor_id IS NULL AND status='ongoing'")
}

func (r *projectRepo) AssignContractorAtomic(
	ctx context.Context,
	projectID, contractorID uuid.UUID,
) (*models.Project, error) {
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

	row := tx.QueryRow(ctx, baseSelectProject()+" WHERE id=$1 FOR UPDATE", projectID)
	proj, err := scanProject(row)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if proj.ContractorID != nil {
		err = utils.ErrAlreadyAssigned
		return proj, err
	}
	if proj.Status != models.ProjectStatusOngoing {
		err = utils.ErrWrongStatus
		return proj, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE projects
        SET contractor_id=$1,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, contractorID, projectID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectProject()+" WHERE id=$1", projectID)
	return scanProject(newRow)
}

func (r *projectRepo) UpdateProgressAtomic(
	ctx context.Context,
	projectID uuid.UUID,
	expectedVersion int64,
	completion int,
	status models.ProjectStatusType,
) (*models.Project, error) {
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

	row := tx.QueryRow(ctx, baseSelectProject()+" WHERE id=$1 FOR UPDATE", projectID)
	proj, err := scanProject(row)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if proj.RowVersion != expectedVersion {
		err = utils.ErrWrongStatus
		return proj, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE projects
        SET completion_percentage=$1,
            status=$2,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$3
    `, completion, status, projectID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectProject()+" WHERE id=$1", projectID)
	return scanProject(newRow)
}
