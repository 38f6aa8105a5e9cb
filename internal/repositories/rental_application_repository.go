package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

type RentalApplicationRepository interface {
	Create(ctx context.Context, a *models.RentalApplication) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.RentalApplication, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalApplication, error)

	// Decide moves a pending application to approved/declined; a second
	// decision on the same application returns utils.ErrNoRowsUpdated.
	Decide(ctx context.Context, id uuid.UUID, status string, decidedAt time.Time) error
}

type rentalApplicationRepo struct {
	db DB
}

func NewRentalApplicationRepository(db DB) RentalApplicationRepository {
	return &rentalApplicationRepo{db: db}
}

func (r *rentalApplicationRepo) Create(ctx context.Context, a *models.RentalApplication) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO rental_applications (
            id, landlord_id, property_id, unit_id,
            applicant_name, applicant_email, applicant_phone,
            monthly_income_cents, move_in_date,
            status, submitted_at, decided_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NULL, 1)
    `,
		a.ID,
		a.LandlordID,
		a.PropertyID,
		a.UnitID,
		a.ApplicantName,
		a.ApplicantEmail,
		a.ApplicantPhone,
		a.MonthlyIncomeCents,
		a.MoveInDate,
		a.Status,
		a.SubmittedAt,
	)
	return err
}

func (r *rentalApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RentalApplication, error) {
	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", id)
	return scanApplication(row)
}

func (r *rentalApplicationRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalApplication, error) {
	rows, err := r.db.Query(ctx, baseSelectApplication()+" WHERE landlord_id=$1 ORDER BY submitted_at DESC", landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.RentalApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *rentalApplicationRepo) Decide(ctx context.Context, id uuid.UUID, status string, decidedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE rental_applications SET
            status=$2, decided_at=$3, row_version=row_version+1
        WHERE id=$1 AND status=$4
    `, id, status, decidedAt, models.ApplicationStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNoRowsUpdated
	}
	return nil
}

func baseSelectApplication() string {
	return `
        SELECT
            id, landlord_id, property_id, unit_id,
            applicant_name, applicant_email, applicant_phone,
            monthly_income_cents, move_in_date,
            status, submitted_at, decided_at, row_version
        FROM rental_applications
    `
}

func scanApplication(row pgx.Row) (*models.RentalApplication, error) {
	var a models.RentalApplication
	err := row.Scan(
		&a.ID,
		&a.LandlordID,
		&a.PropertyID,
		&a.UnitID,
		&a.ApplicantName,
		&a.ApplicantEmail,
		&a.ApplicantPhone,
		&a.MonthlyIncomeCents,
		&a.MoveInDate,
		&a.Status,
		&a.SubmittedAt,
		&a.DecidedAt,
		&a.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
