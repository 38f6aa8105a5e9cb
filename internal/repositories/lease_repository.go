package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type LeaseRepository interface {
	Create(ctx context.Context, l *models.Lease) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Lease, error)
	GetCurrentByTenantID(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error)

	UpdateIfVersion(ctx context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lease) error) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
}

type leaseRepo struct {
	*BaseVersionedRepo[*models.Lease]
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	r := &leaseRepo{db: db}
	selectStmt := baseSelectLease() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanLease)
	return r
}

func (r *leaseRepo) Create(ctx context.Context, l *models.Lease) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO leases (
            id, landlord_id, unit_id, tenant_id,
            monthly_rent_cents, security_deposit_cents, start_date, end_date,
            status, tenant_signed_at, landlord_signed_at,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NULL, NULL, NOW(), NOW(), 1)
    `,
		l.ID,
		l.LandlordID,
		l.UnitID,
		l.TenantID,
		l.MonthlyRentCents,
		l.SecurityDepositCents,
		l.StartDate,
		l.EndDate,
		l.Status,
	)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *leaseRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+" WHERE landlord_id=$1 ORDER BY created_at DESC", landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leaseRepo) GetCurrentByTenantID(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+`
        WHERE tenant_id=$1 AND status IN ($2,$3)
        ORDER BY created_at DESC
        LIMIT 1
    `, tenantID, models.LeaseStatusPendingSignatures, models.LeaseStatusActive)
	return scanLease(row)
}

func (r *leaseRepo) UpdateIfVersion(ctx context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE leases SET
            monthly_rent_cents=$1, security_deposit_cents=$2,
            start_date=$3, end_date=$4, status=$5,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$6 AND row_version=$7
    `,
		l.MonthlyRentCents, l.SecurityDepositCents,
		l.StartDate, l.EndDate, l.Status,
		l.ID, expected,
	)
}

func (r *leaseRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lease) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *leaseRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE leases SET status=$2, updated_at=NOW() WHERE id=$1
    `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectLease() string {
	return `
        SELECT
            id, landlord_id, unit_id, tenant_id,
            monthly_rent_cents, security_deposit_cents, start_date, end_date,
            status, tenant_signed_at, landlord_signed_at,
            created_at, updated_at, row_version
        FROM leases
    `
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	err := row.Scan(
		&l.ID,
		&l.LandlordID,
		&l.UnitID,
		&l.TenantID,
		&l.MonthlyRentCents,
		&l.SecurityDepositCents,
		&l.StartDate,
		&l.EndDate,
		&l.Status,
		&l.TenantSignedAt,
		&l.LandlordSignedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
