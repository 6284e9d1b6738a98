package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

type FundUpdateRepository interface {
	Create(ctx context.Context, fu *models.FundUpdate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FundUpdate, error)

	ListAll(ctx context.Context) ([]*models.FundUpdate, error)
	ListByContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.FundUpdate, error)
	// ListByDistrict joins through projects; fund updates carry no
	// district of their own.
	ListByDistrict(ctx context.Context, district string) ([]*models.FundUpdate, error)

	// ApproveAtomic moves pending → approved and increments the
	// project's fund_utilized by the update amount in the same
	// transaction. The transition is conditioned on the stored status
	// still being pending, so a second approver gets the latest row
	// back with ErrAlreadyReviewed instead of double-incrementing.
	ApproveAtomic(ctx context.Context, fundUpdateID, reviewerID uuid.UUID) (*models.FundUpdate, error)

	// RejectAtomic moves pending → rejected. No project mutation.
	RejectAtomic(ctx context.Context, fundUpdateID, reviewerID uuid.UUID) (*models.FundUpdate, error)
}

type fundUpdateRepo struct {
	db DB
}

func NewFundUpdateRepository(db DB) FundUpdateRepository {
	return &fundUpdateRepo{db: db}
}

func baseSelectFundUpdate() string {
	return `
        SELECT
            id, project_id, contractor_id, amount, description,
            receipt_url, status, reviewed_by, reviewed_at,
            row_version, created_at
        FROM contractor_fund_updates
    `
}

func scanFundUpdate(row pgx.Row) (*models.FundUpdate, error) {
	var fu models.FundUpdate
	err := row.Scan(
		&fu.ID,
		&fu.ProjectID,
		&fu.ContractorID,
		&fu.Amount,
		&fu.Description,
		&fu.ReceiptURL,
		&fu.Status,
		&fu.ReviewedBy,
		&fu.ReviewedAt,
		&fu.RowVersion,
		&fu.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &fu, nil
}

func (r *fundUpdateRepo) Create(ctx context.Context, fu *models.FundUpdate) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO contractor_fund_updates (
            id, project_id, contractor_id, amount, description,
            receipt_url, status, created_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,'pending',NOW(),1
        )
    `,
		fu.ID,
		fu.ProjectID,
		fu.ContractorID,
		fu.Amount,
		fu.Description,
		fu.ReceiptURL,
	)
	return err
}

func (r *fundUpdateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FundUpdate, error) {
	row := r.db.QueryRow(ctx, baseSelectFundUpdate()+" WHERE id=$1", id)
	return scanFundUpdate(row)
}

func (r *fundUpdateRepo) listWhere(ctx context.Context, where string, args ...interface{}) ([]*models.FundUpdate, error) {
	rows, err := r.db.Query(ctx, baseSelectFundUpdate()+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.FundUpdate{}
	for rows.Next() {
		fu, scanErr := scanFundUpdate(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, fu)
	}
	return out, rows.Err()
}

func (r *fundUpdateRepo) ListAll(ctx context.Context) ([]*models.FundUpdate, error) {
	return r.listWhere(ctx, "")
}

func (r *fundUpdateRepo) ListByContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.FundUpdate, error) {
	return r.listWhere(ctx, " WHERE contractor_id=$1", contractorID)
}

func (r *fundUpdateRepo) ListByDistrict(ctx context.Context, district string) ([]*models.FundUpdate, error) {
	rows, err := r.db.Query(ctx, `
        SELECT
            fu.id, fu.project_id, fu.contractor_id, fu.amount, fu.description,
            fu.receipt_url, fu.status, fu.reviewed_by, fu.reviewed_at,
            fu.row_version, fu.created_at
        FROM contractor_fund_updates fu
        JOIN projects p ON p.id = fu.project_id
        WHERE p.district = $1
        ORDER BY fu.created_at DESC
    `, district)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.FundUpdate{}
	for rows.Next() {
		fu, scanErr := scanFundUpdate(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, fu)
	}
	return out, rows.Err()
}

func (r *fundUpdateRepo) ApproveAtomic(
	ctx context.Context,
	fundUpdateID, reviewerID uuid.UUID,
) (*models.FundUpdate, error) {
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

	row := tx.QueryRow(ctx, baseSelectFundUpdate()+" WHERE id=$1 FOR UPDATE", fundUpdateID)
	fu, err := scanFundUpdate(row)
	if err != nil {
		return nil, err
	}
	if fu == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if fu.Status != models.FundUpdateStatusPending {
		err = utils.ErrAlreadyReviewed
		return fu, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE contractor_fund_updates
        SET status='approved',
            reviewed_by=$1, reviewed_at=NOW(),
            row_version=row_version+1
        WHERE id=$2
    `, reviewerID, fundUpdateID)
	if err != nil {
		return nil, err
	}

	// Same transaction: the increment and the status change are one
	// at-most-once unit.
	_, err = tx.Exec(ctx, `
        UPDATE projects
        SET fund_utilized = fund_utilized + $1,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, fu.Amount, fu.ProjectID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectFundUpdate()+" WHERE id=$1", fundUpdateID)
	return scanFundUpdate(newRow)
}

func (r *fundUpdateRepo) RejectAtomic(
	ctx context.Context,
	fundUpdateID, reviewerID uuid.UUID,
) (*models.FundUpdate, error) {
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

	row := tx.QueryRow(ctx, baseSelectFundUpdate()+" WHERE id=$1 FOR UPDATE", fundUpdateID)
	fu, err := scanFundUpdate(row)
	if err != nil {
		return nil, err
	}
	if fu == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if fu.Status != models.FundUpdateStatusPending {
		err = utils.ErrAlreadyReviewed
		return fu, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE contractor_fund_updates
        SET status='rejected',
            reviewed_by=$1, reviewed_at=NOW(),
            row_version=row_version+1
        WHERE id=$2
    `, reviewerID, fundUpdateID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectFundUpdate()+" WHERE id=$1", fundUpdateID)
	return scanFundUpdate(newRow)
}
