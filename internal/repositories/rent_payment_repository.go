package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type RentPaymentRepository interface {
	Create(ctx context.Context, p *models.RentPayment) error
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.RentPayment, error)
}

type rentPaymentRepo struct {
	db DB
}

func NewRentPaymentRepository(db DB) RentPaymentRepository {
	return &rentPaymentRepo{db: db}
}

func (r *rentPaymentRepo) Create(ctx context.Context, p *models.RentPayment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO rent_payments (
            id, lease_id, amount_cents, paid_at, method, reference, note, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
    `,
		p.ID,
		p.LeaseID,
		p.AmountCents,
		p.PaidAt,
		p.Method,
		p.Reference,
		p.Note,
	)
	return err
}

func (r *rentPaymentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.RentPayment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, lease_id, amount_cents, paid_at, method, reference, note, created_at
        FROM rent_payments
        WHERE lease_id=$1
        ORDER BY paid_at DESC
    `, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.RentPayment
	for rows.Next() {
		var p models.RentPayment
		if err := rows.Scan(
			&p.ID,
			&p.LeaseID,
			&p.AmountCents,
			&p.PaidAt,
			&p.Method,
			&p.Reference,
			&p.Note,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
