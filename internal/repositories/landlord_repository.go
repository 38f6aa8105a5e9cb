package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type LandlordRepository interface {
	Create(ctx context.Context, l *models.Landlord) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Landlord, error)
	GetByCustomDomain(ctx context.Context, domain string) (*models.Landlord, error)
	GetByEmail(ctx context.Context, email string) (*models.Landlord, error)

	Update(ctx context.Context, l *models.Landlord) error
	UpdateIfVersion(ctx context.Context, l *models.Landlord, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Landlord) error) error

	SetStripeRefs(ctx context.Context, id uuid.UUID, customerID, subscriptionID *string) error
	SetSubscriptionTier(ctx context.Context, id uuid.UUID, tier string) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type landlordRepo struct {
	*BaseVersionedRepo[*models.Landlord]
	db DB
}

func NewLandlordRepository(db DB) LandlordRepository {
	r := &landlordRepo{db: db}
	selectStmt := baseSelectLandlord() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanLandlord)
	return r
}

func (r *landlordRepo) Create(ctx context.Context, l *models.Landlord) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO landlords (
            id, name, email, subdomain, custom_domain,
            display_name, logo_url, accent_color, subscription_tier,
            stripe_customer_id, stripe_subscription_id,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW(), 1)
    `,
		l.ID,
		l.Name,
		l.Email,
		l.Subdomain,
		l.CustomDomain,
		l.DisplayName,
		l.LogoURL,
		l.AccentColor,
		l.SubscriptionTier,
		l.StripeCustomerID,
		l.StripeSubscriptionID,
	)
	return err
}

func (r *landlordRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Landlord, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *landlordRepo) GetBySubdomain(ctx context.Context, subdomain string) (*models.Landlord, error) {
	row := r.db.QueryRow(ctx, baseSelectLandlord()+" WHERE subdomain=$1", subdomain)
	return scanLandlord(row)
}

func (r *landlordRepo) GetByCustomDomain(ctx context.Context, domain string) (*models.Landlord, error) {
	row := r.db.QueryRow(ctx, baseSelectLandlord()+" WHERE custom_domain=$1", domain)
	return scanLandlord(row)
}

func (r *landlordRepo) GetByEmail(ctx context.Context, email string) (*models.Landlord, error) {
	row := r.db.QueryRow(ctx, baseSelectLandlord()+" WHERE email=$1", email)
	return scanLandlord(row)
}

func (r *landlordRepo) Update(ctx context.Context, l *models.Landlord) error {
	_, err := r.update(ctx, l, false, 0)
	return err
}

func (r *landlordRepo) UpdateIfVersion(ctx context.Context, l *models.Landlord, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, l, true, expected)
}

func (r *landlordRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Landlord) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *landlordRepo) update(ctx context.Context, l *models.Landlord, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE landlords SET
            name=$1, email=$2, subdomain=$3, custom_domain=$4,
            display_name=$5, logo_url=$6, accent_color=$7, updated_at=NOW()
    `
	args := []any{
		l.Name, l.Email, l.Subdomain, l.CustomDomain,
		l.DisplayName, l.LogoURL, l.AccentColor,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$8 AND row_version=$9`
		args = append(args, l.ID, expected)
	} else {
		sql += ` WHERE id=$8`
		args = append(args, l.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *landlordRepo) SetStripeRefs(ctx context.Context, id uuid.UUID, customerID, subscriptionID *string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE landlords
        SET stripe_customer_id=$2, stripe_subscription_id=$3, updated_at=NOW()
        WHERE id=$1
    `, id, customerID, subscriptionID)
	return err
}

func (r *landlordRepo) SetSubscriptionTier(ctx context.Context, id uuid.UUID, tier string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE landlords SET subscription_tier=$2, updated_at=NOW() WHERE id=$1
    `, id, tier)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectLandlord() string {
	return `
        SELECT
            id, name, email, subdomain, custom_domain,
            display_name, logo_url, accent_color, subscription_tier,
            stripe_customer_id, stripe_subscription_id,
            created_at, updated_at, row_version
        FROM landlords
    `
}

func scanLandlord(row pgx.Row) (*models.Landlord, error) {
	var l models.Landlord
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Subdomain,
		&l.CustomDomain,
		&l.DisplayName,
		&l.LogoURL,
		&l.AccentColor,
		&l.SubscriptionTier,
		&l.StripeCustomerID,
		&l.StripeSubscriptionID,
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
