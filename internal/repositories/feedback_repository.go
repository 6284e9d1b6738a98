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

type FeedbackRepository interface {
	Create(ctx context.Context, f *models.Feedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error)

	ListAll(ctx context.Context) ([]*models.Feedback, error)
	ListByDistrict(ctx context.Context, district string) ([]*models.Feedback, error)
	ListByProjectIDs(ctx context.Context, projectIDs []uuid.UUID) ([]*models.Feedback, error)

	// AdvanceStatusAtomic moves the feedback one step forward,
	// conditioned on the stored status matching what the caller read.
	// resolved_at is stamped when the new status is resolved.
	AdvanceStatusAtomic(ctx context.Context, feedbackID uuid.UUID, expected, next models.FeedbackStatusType) (*models.Feedback, error)
}

type feedbackRepo struct {
	db DB
}

func NewFeedbackRepository(db DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func baseSelectFeedback() string {
	return `
        SELECT
            id, project_id, district, citizen_name, feedback_type,
            priority, status, description, resolved_at,
            row_version, created_at
        FROM citizen_feedback
    `
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var f models.Feedback
	var resolvedAt *time.Time
	err := row.Scan(
		&f.ID,
		&f.ProjectID,
		&f.District,
		&f.CitizenName,
		&f.FeedbackType,
		&f.Priority,
		&f.Status,
		&f.Description,
		&resolvedAt,
		&f.RowVersion,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	f.ResolvedAt = resolvedAt
	return &f, nil
}

func (r *feedbackRepo) Create(ctx context.Context, f *models.Feedback) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO citizen_feedback (
            id, project_id, district, citizen_name, feedback_type,
            priority, status, description, created_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,'pending',$7,NOW(),1
        )
    `,
		f.ID,
		f.ProjectID,
		f.District,
		f.CitizenName,
		f.FeedbackType,
		f.Priority,
		f.Description,
	)
	return err
}

func (r *feedbackRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	row := r.db.QueryRow(ctx, baseSelectFeedback()+" WHERE id=$1", id)
	return scanFeedback(row)
}

func (r *feedbackRepo) listWhere(ctx context.Context, where string, args ...interface{}) ([]*models.Feedback, error) {
	rows, err := r.db.Query(ctx, baseSelectFeedback()+where+" ORDER BY created_at DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Feedback{}
	for rows.Next() {
		f, scanErr := scanFeedback(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *feedbackRepo) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	return r.listWhere(ctx, "")
}

func (r *feedbackRepo) ListByDistrict(ctx context.Context, district string) ([]*models.Feedback, error) {
	return r.listWhere(ctx, " WHERE district=$1", district)
}

func (r *feedbackRepo) ListByProjectIDs(ctx context.Context, projectIDs []uuid.UUID) ([]*models.Feedback, error) {
	if len(projectIDs) == 0 {
		return []*models.Feedback{}, nil
	}
	return r.listWhere(ctx, " WHERE project_id = ANY($1)", projectIDs)
}

func (r *feedbackRepo) AdvanceStatusAtomic(
	ctx context.Context,
	feedbackID uuid.UUID,
	expected, next models.FeedbackStatusType,
) (*models.Feedback, error) {
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

	row := tx.QueryRow(ctx, baseSelectFeedback()+" WHERE id=$1 FOR UPDATE", feedbackID)
	f, err := scanFeedback(row)
	if err != nil {
		return nil, err
	}
	if f == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if f.Status != expected {
		err = utils.ErrWrongStatus
		return f, err
	}

	if next == models.FeedbackStatusResolved {
		_, err = tx.Exec(ctx, `
            UPDATE citizen_feedback
            SET status=$1, resolved_at=NOW(), row_version=row_version+1
            WHERE id=$2
        `, next, feedbackID)
	} else {
		_, err = tx.Exec(ctx, `
            UPDATE citizen_feedback
            SET status=$1, row_version=row_version+1
            WHERE id=$2
        `, next, feedbackID)
	}
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectFeedback()+" WHERE id=$1", feedbackID)
	return scanFeedback(newRow)
}
