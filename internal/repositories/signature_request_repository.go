package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// CompletedSignature carries everything CompleteSigning persists once the
// signed PDF and audit log have already been stored.
type CompletedSignature struct {
	RequestID uuid.UUID
	LeaseID   uuid.UUID
	Role      string

	SignerName      string
	SignerEmail     string
	SignerIP        string
	SignerUserAgent string
	SignedAt        time.Time

	SignedPdfURL string
	AuditLogURL  string
	DocumentHash string
}

type SignatureRequestRepository interface {
	Create(ctx context.Context, req *models.DocumentSignatureRequest) error

	GetByToken(ctx context.Context, token string) (*models.DocumentSignatureRequest, error)
	GetPendingByLeaseAndRole(ctx context.Context, leaseID uuid.UUID, role string) (*models.DocumentSignatureRequest, error)
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.DocumentSignatureRequest, error)

	// CompleteSigning flips the request sent→signed and stamps the
	// lease's signed-at column in a single transaction. Returns
	// utils.ErrAlreadySigned when the request was signed concurrently.
	CompleteSigning(ctx context.Context, c CompletedSignature) error

	CleanupExpired(ctx context.Context) error
}

type signatureRequestRepo struct {
	db TxDB
}

func NewSignatureRequestRepository(db TxDB) SignatureRequestRepository {
	return &signatureRequestRepo{db: db}
}

func (r *signatureRequestRepo) Create(ctx context.Context, req *models.DocumentSignatureRequest) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO document_signature_requests (
            id, lease_id, token, recipient_name, recipient_email,
            role, status, expires_at, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
    `,
		req.ID,
		req.LeaseID,
		req.Token,
		req.RecipientName,
		req.RecipientEmail,
		req.Role,
		req.Status,
		req.ExpiresAt,
	)
	return err
}

func (r *signatureRequestRepo) GetByToken(ctx context.Context, token string) (*models.DocumentSignatureRequest, error) {
	row := r.db.QueryRow(ctx, baseSelectSignatureRequest()+" WHERE token=$1", token)
	return scanSignatureRequest(row)
}

func (r *signatureRequestRepo) GetPendingByLeaseAndRole(ctx context.Context, leaseID uuid.UUID, role string) (*models.DocumentSignatureRequest, error) {
	row := r.db.QueryRow(ctx, baseSelectSignatureRequest()+`
        WHERE lease_id=$1 AND role=$2 AND status=$3 AND expires_at > NOW()
        ORDER BY created_at DESC
        LIMIT 1
    `, leaseID, role, models.SignatureStatusSent)
	return scanSignatureRequest(row)
}

func (r *signatureRequestRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.DocumentSignatureRequest, error) {
	rows, err := r.db.Query(ctx, baseSelectSignatureRequest()+" WHERE lease_id=$1 ORDER BY created_at", leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.DocumentSignatureRequest
	for rows.Next() {
		req, err := scanSignatureRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *signatureRequestRepo) CompleteSigning(ctx context.Context, c CompletedSignature) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	// Conditional on status: a concurrent submission of the same token
	// loses here and the whole transaction is rolled back.
	tag, err := tx.Exec(ctx, `
        UPDATE document_signature_requests SET
            status=$2,
            signer_name=$3, signer_email=$4, signer_ip=$5, signer_user_agent=$6,
            signed_at=$7, signed_pdf_url=$8, audit_log_url=$9, document_hash=$10
        WHERE id=$1 AND status=$11
    `,
		c.RequestID,
		models.SignatureStatusSigned,
		c.SignerName, c.SignerEmail, c.SignerIP, c.SignerUserAgent,
		c.SignedAt, c.SignedPdfURL, c.AuditLogURL, c.DocumentHash,
		models.SignatureStatusSent,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrAlreadySigned
	}

	// Stamp the derived convenience column on the lease; the lease goes
	// active once both parties have signed.
	switch c.Role {
	case models.SignerRoleTenant:
		_, err = tx.Exec(ctx, `
            UPDATE leases SET
                tenant_signed_at=$2,
                status = CASE WHEN landlord_signed_at IS NOT NULL THEN $3 ELSE status END,
                updated_at=NOW()
            WHERE id=$1
        `, c.LeaseID, c.SignedAt, models.LeaseStatusActive)
	case models.SignerRoleLandlord:
		_, err = tx.Exec(ctx, `
            UPDATE leases SET
                landlord_signed_at=$2,
                status = CASE WHEN tenant_signed_at IS NOT NULL THEN $3 ELSE status END,
                updated_at=NOW()
            WHERE id=$1
        `, c.LeaseID, c.SignedAt, models.LeaseStatusActive)
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *signatureRequestRepo) CleanupExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        DELETE FROM document_signature_requests
        WHERE status=$1 AND expires_at < NOW() - INTERVAL '7 days'
    `, models.SignatureStatusSent)
	return err
}

func baseSelectSignatureRequest() string {
	return `
        SELECT
            id, lease_id, token, recipient_name, recipient_email,
            role, status, expires_at,
            signer_name, signer_email, signer_ip, signer_user_agent,
            signed_at, signed_pdf_url, audit_log_url, document_hash,
            created_at
        FROM document_signature_requests
    `
}

func scanSignatureRequest(row pgx.Row) (*models.DocumentSignatureRequest, error) {
	var req models.DocumentSignatureRequest
	err := row.Scan(
		&req.ID,
		&req.LeaseID,
		&req.Token,
		&req.RecipientName,
		&req.RecipientEmail,
		&req.Role,
		&req.Status,
		&req.ExpiresAt,
		&req.SignerName,
		&req.SignerEmail,
		&req.SignerIP,
		&req.SignerUserAgent,
		&req.SignedAt,
		&req.SignedPdfURL,
		&req.AuditLogURL,
		&req.DocumentHash,
		&req.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}
