package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type TenantSMSVerificationRepository interface {
	CreateCode(ctx context.Context, tenantID *uuid.UUID, phone, code string, expiresAt time.Time) error
	GetCode(ctx context.Context, phone string) (*models.TenantSMSVerificationCode, error)
	DeleteCode(ctx context.Context, id uuid.UUID) error
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	CountRecentByPhone(ctx context.Context, phone string, since time.Time) (int, error)
	CleanupExpired(ctx context.Context) error
}

type tenantSMSVerificationRepo struct {
	db DB
}

func NewTenantSMSVerificationRepository(db DB) TenantSMSVerificationRepository {
	return &tenantSMSVerificationRepo{db: db}
}

func (r *tenantSMSVerificationRepo) CreateCode(
	ctx context.Context,
	tenantID *uuid.UUID,
	phone, code string,
	expiresAt time.Time,
) error {
	q := `
        INSERT INTO tenant_sms_verification_codes
            (id, tenant_id, tenant_phone, verification_code, expires_at, created_at, attempts)
        VALUES ($1, $2, $3, $4, $5, NOW(), 0)
    `
	_, err := r.db.Exec(ctx, q, uuid.New(), tenantID, phone, code, expiresAt)
	return err
}

func (r *tenantSMSVerificationRepo) GetCode(ctx context.Context, phone string) (*models.TenantSMSVerificationCode, error) {
	q := `
        SELECT id, tenant_id, tenant_phone, verification_code, expires_at, attempts,
               verified, verified_at, created_at
        FROM tenant_sms_verification_codes
        WHERE tenant_phone = $1
        ORDER BY created_at DESC
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, q, phone)
	var rec models.TenantSMSVerificationCode
	err := row.Scan(
		&rec.ID,
		&rec.TenantID,
		&rec.TenantPhone,
		&rec.VerificationCode,
		&rec.ExpiresAt,
		&rec.Attempts,
		&rec.Verified,
		&rec.VerifiedAt,
		&rec.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *tenantSMSVerificationRepo) DeleteCode(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tenant_sms_verification_codes WHERE id = $1`, id)
	return err
}

func (r *tenantSMSVerificationRepo) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE tenant_sms_verification_codes SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

func (r *tenantSMSVerificationRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	q := `
        UPDATE tenant_sms_verification_codes
        SET verified = TRUE, verified_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, q, id)
	return err
}

func (r *tenantSMSVerificationRepo) CountRecentByPhone(ctx context.Context, phone string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM tenant_sms_verification_codes
        WHERE tenant_phone = $1 AND created_at > $2
    `, phone, since).Scan(&n)
	return n, err
}

func (r *tenantSMSVerificationRepo) CleanupExpired(ctx context.Context) error {
	q := `
        DELETE FROM tenant_sms_verification_codes
        WHERE
          (verified = FALSE AND expires_at < NOW())
          OR
          (verified = TRUE AND verified_at + INTERVAL '15 minutes' < NOW())
    `
	_, err := r.db.Exec(ctx, q)
	return err
}
