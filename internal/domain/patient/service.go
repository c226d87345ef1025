package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/superbill/superbill/internal/domain/superbill"
)

// SuperbillSource is the slice of the superbill service the summary rollup
// needs. Superbills reference patients by name, not by foreign key, so the
// lookup is name-based.
type SuperbillSource interface {
	ListByPatientName(ctx context.Context, patientName string) ([]*superbill.Superbill, error)
}

type Service struct {
	repo       Repository
	superbills SuperbillSource
}

func NewService(repo Repository, superbills SuperbillSource) *Service {
	return &Service{repo: repo, superbills: superbills}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("patient name is required")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("patient name is required")
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	if query != "" {
		return s.repo.Search(ctx, query, limit, offset)
	}
	return s.repo.List(ctx, limit, offset)
}

// ListSummaries returns the dashboard view: each patient with their
// superbill rollup and billing status.
func (s *Service) ListSummaries(ctx context.Context, query string, limit, offset int) ([]*Summary, int, error) {
	patients, total, err := s.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	summaries := make([]*Summary, 0, len(patients))
	for _, p := range patients {
		sum, err := s.Summarize(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, total, nil
}

// Summarize folds a patient's superbills into a Summary. A patient with no
// superbills still gets a row, with the billing status reflecting that.
func (s *Service) Summarize(ctx context.Context, p *Patient) (*Summary, error) {
	superbills, err := s.superbills.ListByPatientName(ctx, p.Name)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Patient:        *p,
		SuperbillCount: len(superbills),
		BillingStatus:  string(superbill.DeterminePatientStatus(superbills)),
	}
	for _, sb := range superbills {
		sum.TotalVisits += len(sb.Visits)
		sum.TotalAmount += superbill.TotalFee(sb.Visits)
		if first := superbill.EarliestVisitDate(sb.Visits); first != nil {
			if sum.FirstVisitDate == nil || first.Before(*sum.FirstVisitDate) {
				sum.FirstVisitDate = first
			}
		}
		if last := superbill.LatestVisitDate(sb.Visits); last != nil {
			if sum.LastVisitDate == nil || last.After(*sum.LastVisitDate) {
				sum.LastVisitDate = last
			}
		}
	}
	return sum, nil
}
