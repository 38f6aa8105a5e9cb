package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Unit, error)
	ListVacantByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Unit, error)

	Update(ctx context.Context, u *models.Unit) error
	UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type unitRepo struct {
	*BaseVersionedRepo[*models.Unit]
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	r := &unitRepo{db: db}
	selectStmt := baseSelectUnit() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanUnit)
	return r
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO units (
            id, property_id, unit_number, bedrooms, bathrooms,
            monthly_rent_cents, vacant,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
    `,
		u.ID,
		u.PropertyID,
		u.UnitNumber,
		u.Bedrooms,
		u.Bathrooms,
		u.MonthlyRentCents,
		u.Vacant,
	)
	return err
}

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *unitRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE property_id=$1 ORDER BY unit_number", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUnits(rows)
}

func (r *unitRepo) ListVacantByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, `
        SELECT
            u.id, u.property_id, u.unit_number, u.bedrooms, u.bathrooms,
            u.monthly_rent_cents, u.vacant,
            u.created_at, u.updated_at, u.row_version
        FROM units u
        JOIN properties p ON p.id = u.property_id
        WHERE p.landlord_id=$1 AND u.vacant = TRUE
        ORDER BY p.created_at, u.unit_number
    `, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUnits(rows)
}

func (r *unitRepo) Update(ctx context.Context, u *models.Unit) error {
	_, err := r.update(ctx, u, false, 0)
	return err
}

func (r *unitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, u, true, expected)
}

func (r *unitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Unit) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *unitRepo) update(ctx context.Context, u *models.Unit, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE units SET
            unit_number=$1, bedrooms=$2, bathrooms=$3,
            monthly_rent_cents=$4, vacant=$5, updated_at=NOW()
    `
	args := []any{
		u.UnitNumber, u.Bedrooms, u.Bathrooms, u.MonthlyRentCents, u.Vacant,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$6 AND row_version=$7`
		args = append(args, u.ID, expected)
	} else {
		sql += ` WHERE id=$6`
		args = append(args, u.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func collectUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func baseSelectUnit() string {
	return `
        SELECT
            id, property_id, unit_number, bedrooms, bathrooms,
            monthly_rent_cents, vacant,
            created_at, updated_at, row_version
        FROM units
    `
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(
		&u.ID,
		&u.PropertyID,
		&u.UnitNumber,
		&u.Bedrooms,
		&u.Bathrooms,
		&u.MonthlyRentCents,
		&u.Vacant,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
