package team

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateInvitation(ctx context.Context, inv *Invitation) error
	GetInvitationByToken(ctx context.Context, token string) (*Invitation, error)
	MarkInvitationAccepted(ctx context.Context, id uuid.UUID) error
	ListInvitations(ctx context.Context) ([]*Invitation, error)
	DeleteInvitation(ctx context.Context, id uuid.UUID) error

	UpsertMember(ctx context.Context, m *Member) error
	GetMember(ctx context.Context, userID string) (*Member, error)
	ListMembers(ctx context.Context) ([]*Member, error)
	UpdateMemberRole(ctx context.Context, userID, role string) error
	DeleteMember(ctx context.Context, userID string) error
}
