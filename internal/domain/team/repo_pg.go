package team

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const invitationCols = `id, email, role, token, expires_at, accepted_at, created_at`

func (r *repoPG) scanInvitation(row pgx.Row) (*Invitation, error) {
	var inv Invitation
	err := row.Scan(&inv.ID, &inv.Email, &inv.Role, &inv.Token,
		&inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedAt)
	return &inv, err
}

func (r *repoPG) CreateInvitation(ctx context.Context, inv *Invitation) error {
	inv.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invitation (id, email, role, token, expires_at)
		VALUES ($1,$2,$3,$4,$5)`,
		inv.ID, inv.Email, inv.Role, inv.Token, inv.ExpiresAt)
	return err
}

func (r *repoPG) GetInvitationByToken(ctx context.Context, token string) (*Invitation, error) {
	return r.scanInvitation(r.pool.QueryRow(ctx,
		`SELECT `+invitationCols+` FROM invitation WHERE token = $1`, token))
}

func (r *repoPG) MarkInvitationAccepted(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invitation SET accepted_at = NOW() WHERE id = $1 AND accepted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invitation %s already accepted or missing", id)
	}
	return nil
}

func (r *repoPG) ListInvitations(ctx context.Context) ([]*Invitation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invitationCols+` FROM invitation ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Invitation
	for rows.Next() {
		inv, err := r.scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

func (r *repoPG) DeleteInvitation(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM invitation WHERE id = $1`, id)
	return err
}

const memberCols = `user_id, email, role, created_at, updated_at`

func (r *repoPG) scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.UserID, &m.Email, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *repoPG) UpsertMember(ctx context.Context, m *Member) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO member (user_id, email, role) VALUES ($1,$2,$3)
		ON CONFLICT (user_id) DO UPDATE SET email = $2, role = $3, updated_at = NOW()`,
		m.UserID, m.Email, m.Role)
	return err
}

func (r *repoPG) GetMember(ctx context.Context, userID string) (*Member, error) {
	return r.scanMember(r.pool.QueryRow(ctx,
		`SELECT `+memberCols+` FROM member WHERE user_id = $1`, userID))
}

func (r *repoPG) ListMembers(ctx context.Context) ([]*Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberCols+` FROM member ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Member
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *repoPG) UpdateMemberRole(ctx context.Context, userID, role string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE member SET role = $2, updated_at = NOW() WHERE user_id = $1`, userID, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", userID)
	}
	return nil
}

func (r *repoPG) DeleteMember(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM member WHERE user_id = $1`, userID)
	return err
}
