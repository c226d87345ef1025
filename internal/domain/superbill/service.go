package superbill

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/superbill/superbill/internal/config"
)

var validStatuses = map[string]bool{
	StatusDraft: true, StatusInProgress: true,
	StatusInReview: true, StatusCompleted: true,
}

var validVisitStatuses = map[string]bool{
	VisitStatusDraft: true, VisitStatusUnbilled: true,
	VisitStatusBilled: true, VisitStatusIncluded: true,
}

// StatusNotifier receives superbill status transitions so the dashboard can
// move cards across its status board in real time.
type StatusNotifier interface {
	SuperbillStatusChanged(ctx context.Context, id uuid.UUID, status string)
}

type Service struct {
	repo     Repository
	clinic   config.Clinic
	notifier StatusNotifier
}

func NewService(repo Repository, clinic config.Clinic) *Service {
	return &Service{repo: repo, clinic: clinic}
}

// SetNotifier wires an optional status-change notifier.
func (s *Service) SetNotifier(n StatusNotifier) { s.notifier = n }

// Create validates a new superbill and snapshots clinic defaults onto any
// provider field the caller left blank.
func (s *Service) Create(ctx context.Context, sb *Superbill) error {
	if strings.TrimSpace(sb.PatientName) == "" {
		return fmt.Errorf("patient_name is required")
	}
	if sb.Status == "" {
		sb.Status = StatusDraft
	}
	if !validStatuses[sb.Status] {
		return fmt.Errorf("invalid superbill status: %s", sb.Status)
	}
	if sb.IssueDate.IsZero() {
		sb.IssueDate = time.Now()
	}
	for i := range sb.Visits {
		if err := validateVisit(&sb.Visits[i]); err != nil {
			return err
		}
		sb.Visits[i].Status = VisitStatusIncluded
	}
	s.snapshotClinic(sb)
	return s.repo.Create(ctx, sb)
}

func validateVisit(v *Visit) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Fee < 0 {
		return fmt.Errorf("visit %s: fee must not be negative", v.ID)
	}
	for _, e := range v.CPTCodeEntries {
		if e.Code == "" {
			return fmt.Errorf("visit %s: cpt entry code is required", v.ID)
		}
		if e.Fee < 0 {
			return fmt.Errorf("visit %s: cpt entry fee must not be negative", v.ID)
		}
	}
	if v.Status != "" && !validVisitStatuses[v.Status] {
		return fmt.Errorf("visit %s: invalid status %s", v.ID, v.Status)
	}
	return nil
}

func (s *Service) snapshotClinic(sb *Superbill) {
	if sb.ClinicName == "" {
		sb.ClinicName = s.clinic.Name
	}
	if sb.ClinicAddress == "" {
		sb.ClinicAddress = s.clinic.Address
	}
	if sb.ClinicPhone == "" {
		sb.ClinicPhone = s.clinic.Phone
	}
	if sb.ClinicEmail == "" {
		sb.ClinicEmail = s.clinic.Email
	}
	if sb.EIN == "" {
		sb.EIN = s.clinic.EIN
	}
	if sb.NPI == "" {
		sb.NPI = s.clinic.NPI
	}
	if sb.ProviderName == "" {
		sb.ProviderName = s.clinic.Provider
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Superbill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, sb *Superbill) error {
	if strings.TrimSpace(sb.PatientName) == "" {
		return fmt.Errorf("patient_name is required")
	}
	if !validStatuses[sb.Status] {
		return fmt.Errorf("invalid superbill status: %s", sb.Status)
	}
	for i := range sb.Visits {
		if err := validateVisit(&sb.Visits[i]); err != nil {
			return err
		}
	}
	return s.repo.Update(ctx, sb)
}

// ChangeStatus moves a superbill across the status board.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid superbill status: %s", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.SuperbillStatusChanged(ctx, id, status)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Superbill, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatientName(ctx context.Context, patientName string) ([]*Superbill, error) {
	return s.repo.ListByPatientName(ctx, patientName)
}

func (s *Service) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Superbill, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// Search filters superbills by a free-text patient query and an optional
// status.
func (s *Service) Search(ctx context.Context, query, status string, limit, offset int) ([]*Superbill, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid superbill status: %s", status)
	}
	params := map[string]string{}
	if query != "" {
		params["q"] = query
	}
	if status != "" {
		params["status"] = status
	}
	return s.repo.Search(ctx, params, limit, offset)
}
