package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/rohitpal119/district-state-watch/internal/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	ListByRoleAndDistrict(ctx context.Context, role models.UserRoleType, district string) ([]*models.Profile, error)
}

type profileRepo struct {
	db DB
}

func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepo{db: db}
}

func baseSelectProfile() string {
	return `
        SELECT
            id, email, full_name, phone_number, role, assigned_district,
            created_at, updated_at
        FROM profiles
    `
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.PhoneNumber,
		&p.Role,
		&p.AssignedDistrict,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO profiles (
            id, email, full_name, phone_number, role, assigned_district,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,NOW(),NOW()
        )
    `,
		p.ID,
		p.Email,
		p.FullName,
		p.PhoneNumber,
		p.Role,
		p.AssignedDistrict,
	)
	return err
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := r.db.QueryRow(ctx, baseSelectProfile()+" WHERE id=$1", id)
	return scanProfile(row)
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := r.db.QueryRow(ctx, baseSelectProfile()+" WHERE email=$1", email)
	return scanProfile(row)
}

func (r *profileRepo) ListByRoleAndDistrict(
	ctx context.Context,
	role models.UserRoleType,
	district string,
) ([]*models.Profile, error) {
	rows, err := r.db.Query(ctx,
		baseSelectProfile()+" WHERE role=$1 AND assigned_district=$2 ORDER BY full_name",
		role, district,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Profile
	for rows.Next() {
		p, scanErr := scanProfile(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
