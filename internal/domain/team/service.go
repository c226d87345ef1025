package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var validRoles = map[string]bool{
	RoleAdmin:    true,
	RoleBiller:   true,
	RoleProvider: true,
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Invite creates a pending invitation with a fresh token valid for seven
// days.
func (s *Service) Invite(ctx context.Context, email, role string) (*Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if !validRoles[role] {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	inv := &Invitation{
		Email:     email,
		Role:      role,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(invitationTTL),
	}
	if err := s.repo.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Accept redeems an invitation token and enrolls the user as a member with
// the invited role.
func (s *Service) Accept(ctx context.Context, token, userID string) (*Member, error) {
	if token == "" || userID == "" {
		return nil, fmt.Errorf("token and user id are required")
	}
	inv, err := s.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invitation not found")
	}
	if inv.AcceptedAt != nil {
		return nil, fmt.Errorf("invitation already accepted")
	}
	if inv.Expired(s.now()) {
		return nil, fmt.Errorf("invitation expired")
	}

	m := &Member{UserID: userID, Email: inv.Email, Role: inv.Role}
	if err := s.repo.UpsertMember(ctx, m); err != nil {
		return nil, err
	}
	if err := s.repo.MarkInvitationAccepted(ctx, inv.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListInvitations(ctx context.Context) ([]*Invitation, error) {
	return s.repo.ListInvitations(ctx)
}

func (s *Service) RevokeInvitation(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvitation(ctx, id)
}

func (s *Service) ListMembers(ctx context.Context) ([]*Member, error) {
	return s.repo.ListMembers(ctx)
}

// UpdateRole changes a member's role. The last admin cannot be demoted.
func (s *Service) UpdateRole(ctx context.Context, userID, role string) error {
	if !validRoles[role] {
		return fmt.Errorf("invalid role %q", role)
	}
	if role != RoleAdmin {
		m, err := s.repo.GetMember(ctx, userID)
		if err != nil {
			return err
		}
		if m.Role == RoleAdmin {
			if err := s.ensureAnotherAdmin(ctx, userID); err != nil {
				return err
			}
		}
	}
	return s.repo.UpdateMemberRole(ctx, userID, role)
}

// Remove deletes a member. The last admin cannot be removed.
func (s *Service) Remove(ctx context.Context, userID string) error {
	m, err := s.repo.GetMember(ctx, userID)
	if err != nil {
		return err
	}
	if m.Role == RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx, userID); err != nil {
			return err
		}
	}
	return s.repo.DeleteMember(ctx, userID)
}

func (s *Service) ensureAnotherAdmin(ctx context.Context, excludeUserID string) error {
	members, err := s.repo.ListMembers(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.Role == RoleAdmin && m.UserID != excludeUserID {
			return nil
		}
	}
	return fmt.Errorf("cannot remove the last admin")
}
