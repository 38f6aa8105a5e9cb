package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/vegaswarrior/Property-Management-sub001/internal/models"
)

type TeamMemberRepository interface {
	Create(ctx context.Context, m *models.TeamMember) error
	GetByEmail(ctx context.Context, landlordID uuid.UUID, email string) (*models.TeamMember, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.TeamMember, error)
	MarkAccepted(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type teamMemberRepo struct {
	db DB
}

func NewTeamMemberRepository(db DB) TeamMemberRepository {
	return &teamMemberRepo{db: db}
}

func (r *teamMemberRepo) Create(ctx context.Context, m *models.TeamMember) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO team_members (
            id, landlord_id, name, email, role, invited_at, accepted_at
        ) VALUES ($1,$2,$3,$4,$5,$6, NULL)
    `,
		m.ID,
		m.LandlordID,
		m.Name,
		m.Email,
		m.Role,
		m.InvitedAt,
	)
	return err
}

func (r *teamMemberRepo) GetByEmail(ctx context.Context, landlordID uuid.UUID, email string) (*models.TeamMember, error) {
	row := r.db.QueryRow(ctx, baseSelectTeamMember()+" WHERE landlord_id=$1 AND email=$2", landlordID, email)
	return scanTeamMember(row)
}

func (r *teamMemberRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.TeamMember, error) {
	rows, err := r.db.Query(ctx, baseSelectTeamMember()+" WHERE landlord_id=$1 ORDER BY invited_at", landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *teamMemberRepo) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE team_members SET accepted_at = NOW() WHERE id=$1 AND accepted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *teamMemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectTeamMember() string {
	return `
        SELECT id, landlord_id, name, email, role, invited_at, accepted_at
        FROM team_members
    `
}

func scanTeamMember(row pgx.Row) (*models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(
		&m.ID,
		&m.LandlordID,
		&m.Name,
		&m.Email,
		&m.Role,
		&m.InvitedAt,
		&m.AcceptedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
