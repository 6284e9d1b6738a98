package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/rohitpal119/district-state-watch/internal/models"
)

type CommunicationRepository interface {
	Create(ctx context.Context, c *models.Communication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Communication, error)

	ListForContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.Communication, error)
	// ListForDistrict joins through projects so a collector sees the
	// threads on projects in their district, plus messages addressed
	// to them directly.
	ListForCollector(ctx context.Context, collectorID uuid.UUID, district string) ([]*models.Communication, error)

	CountUnread(ctx context.Context, contractorID uuid.UUID, senderType models.SenderTypeType) (int, error)

	// MarkRead flips read=false → read=true. Caller enforces that only
	// the counterparty may do this; the WHERE clause keeps the write
	// idempotent.
	MarkRead(ctx context.Context, id uuid.UUID) (*models.Communication, error)
}

type communicationRepo struct {
	db DB
}

func NewCommunicationRepository(db DB) CommunicationRepository {
	return &communicationRepo{db: db}
}

func baseSelectCommunication() string {
	return `
        SELECT
            id, project_id, contractor_id, district_collector_id,
            sender_type, message, read,
            row_version, created_at
        FROM contractor_communications
    `
}

func scanCommunication(row pgx.Row) (*models.Communication, error) {
	var c models.Communication
	err := row.Scan(
		&c.ID,
		&c.ProjectID,
		&c.ContractorID,
		&c.DistrictCollectorID,
		&c.SenderType,
		&c.Message,
		&c.Read,
		&c.RowVersion,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *communicationRepo) Create(ctx context.Context, c *models.Communication) error {
	// New messages always start unread.
	_, err := r.db.Exec(ctx, `
        INSERT INTO contractor_communications (
            id, project_id, contractor_id, district_collector_id,
            sender_type, message, read, created_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,FALSE,NOW(),1
        )
    `,
		c.ID,
		c.ProjectID,
		c.ContractorID,
		c.DistrictCollectorID,
		c.SenderType,
		c.Message,
	)
	return err
}

func (r *communicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Communication, error) {
	row := r.db.QueryRow(ctx, baseSelectCommunication()+" WHERE id=$1", id)
	return scanCommunication(row)
}

func (r *communicationRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Communication, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Communication{}
	for rows.Next() {
		c, scanErr := scanCommunication(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *communicationRepo) ListForContractor(ctx context.Context, contractorID uuid.UUID) ([]*models.Communication, error) {
	return r.list(ctx, baseSelectCommunication()+" WHERE contractor_id=$1 ORDER BY created_at DESC", contractorID)
}

func (r *communicationRepo) ListForCollector(
	ctx context.Context,
	collectorID uuid.UUID,
	district string,
) ([]*models.Communication, error) {
	return r.list(ctx, `
        SELECT
            cc.id, cc.project_id, cc.contractor_id, cc.district_collector_id,
            cc.sender_type, cc.message, cc.read,
            cc.row_version, cc.created_at
        FROM contractor_communications cc
        LEFT JOIN projects p ON p.id = cc.project_id
        WHERE cc.district_collector_id = $1 OR p.district = $2
        ORDER BY cc.created_at DESC
    `, collectorID, district)
}

func (r *communicationRepo) CountUnread(
	ctx context.Context,
	contractorID uuid.UUID,
	senderType models.SenderTypeType,
) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM contractor_communications
        WHERE contractor_id=$1 AND sender_type=$2 AND read=FALSE
    `, contractorID, senderType).Scan(&count)
	return count, err
}

func (r *communicationRepo) MarkRead(ctx context.Context, id uuid.UUID) (*models.Communication, error) {
	_, err := r.db.Exec(ctx, `
        UPDATE contractor_communications
        SET read=TRUE, row_version=row_version+1
        WHERE id=$1 AND read=FALSE
    `, id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, baseSelectCommunication()+" WHERE id=$1", id)
	return scanCommunication(row)
}
