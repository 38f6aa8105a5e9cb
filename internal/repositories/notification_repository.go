package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, landlordID uuid.UUID) error
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO notifications (
            id, landlord_id, kind, title, body, read, created_at
        ) VALUES ($1,$2,$3,$4,$5, FALSE, NOW())
    `,
		n.ID,
		n.LandlordID,
		n.Kind,
		n.Title,
		n.Body,
	)
	return err
}

func (r *notificationRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID, unreadOnly bool) ([]*models.Notification, error) {
	q := `
        SELECT id, landlord_id, kind, title, body, read, created_at
        FROM notifications
        WHERE landlord_id=$1
    `
	if unreadOnly {
		q += ` AND read = FALSE`
	}
	q += ` ORDER BY created_at DESC LIMIT 100`

	rows, err := r.db.Query(ctx, q, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID,
			&n.LandlordID,
			&n.Kind,
			&n.Title,
			&n.Body,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, landlordID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE landlord_id=$1`, landlordID)
	return err
}
