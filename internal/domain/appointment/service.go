package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
	StatusNoShow:    true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListByRange returns appointments overlapping [from, to). A zero range
// defaults to the current calendar month.
func (s *Service) ListByRange(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	if from.IsZero() && to.IsZero() {
		now := time.Now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("invalid range: to must be after from")
	}
	return s.repo.ListByRange(ctx, from, to)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) validate(a *Appointment) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("appointment title is required")
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.StartsAt.IsZero() || a.EndsAt.IsZero() {
		return fmt.Errorf("starts_at and ends_at are required")
	}
	if !a.EndsAt.After(a.StartsAt) {
		return fmt.Errorf("ends_at must be after starts_at")
	}
	if a.Status != "" && !validStatuses[a.Status] {
		return fmt.Errorf("invalid status %q", a.Status)
	}
	return nil
}
