package superbill

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/superbill/superbill/internal/config"
)

// -- Mock Repository --

type mockRepo struct {
	superbills map[uuid.UUID]*Superbill
}

func newMockRepo() *mockRepo {
	return &mockRepo{superbills: make(map[uuid.UUID]*Superbill)}
}

func (m *mockRepo) Create(_ context.Context, sb *Superbill) error {
	sb.ID = uuid.New()
	sb.CreatedAt = time.Now()
	sb.UpdatedAt = time.Now()
	m.superbills[sb.ID] = sb
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Superbill, error) {
	sb, ok := m.superbills[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return sb, nil
}

func (m *mockRepo) Update(_ context.Context, sb *Superbill) error {
	m.superbills[sb.ID] = sb
	return nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	sb, ok := m.superbills[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	sb.Status = status
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.superbills, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Superbill, int, error) {
	var result []*Superbill
	for _, sb := range m.superbills {
		result = append(result, sb)
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByPatientName(_ context.Context, patientName string) ([]*Superbill, error) {
	var result []*Superbill
	for _, sb := range m.superbills {
		if sb.PatientName == patientName {
			result = append(result, sb)
		}
	}
	return result, nil
}

func (m *mockRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*Superbill, error) {
	var result []*Superbill
	for _, id := range ids {
		if sb, ok := m.superbills[id]; ok {
			result = append(result, sb)
		}
	}
	return result, nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Superbill, int, error) {
	var result []*Superbill
	for _, sb := range m.superbills {
		if status, ok := params["status"]; ok && sb.Status != status {
			continue
		}
		result = append(result, sb)
	}
	return result, len(result), nil
}

func testClinic() config.Clinic {
	return config.Clinic{
		Name:     "Lakeside Physical Therapy",
		Address:  "12 Shore Rd, Madison WI 53703",
		Phone:    "(608) 555-0134",
		EIN:      "12-3456789",
		NPI:      "1234567890",
		Provider: "Dr. Alex Rivera",
	}
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, testClinic()), repo
}

// -- Tests --

func TestCreateSuperbill(t *testing.T) {
	svc, _ := newTestService()
	sb := &Superbill{
		PatientName: "Jane Doe",
		PatientDOB:  "1985-01-01",
		Visits:      []Visit{codedVisit(100)},
	}
	if err := svc.Create(context.Background(), sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.Status != StatusDraft {
		t.Errorf("expected default status draft, got %s", sb.Status)
	}
	if sb.IssueDate.IsZero() {
		t.Error("expected issue date to be defaulted")
	}
	if sb.ClinicName != "Lakeside Physical Therapy" {
		t.Errorf("expected clinic defaults snapshotted, got %q", sb.ClinicName)
	}
	if sb.Visits[0].Status != VisitStatusIncluded {
		t.Errorf("expected visit marked included_in_superbill, got %s", sb.Visits[0].Status)
	}
	if sb.Visits[0].ID == "" {
		t.Error("expected visit to receive an id")
	}
}

func TestCreateSuperbill_PatientNameRequired(t *testing.T) {
	svc, _ := newTestService()
	err := svc.Create(context.Background(), &Superbill{PatientName: "  "})
	if err == nil {
		t.Error("expected error for missing patient_name")
	}
}

func TestCreateSuperbill_NegativeFeeRejected(t *testing.T) {
	svc, _ := newTestService()
	sb := &Superbill{
		PatientName: "Jane Doe",
		Visits:      []Visit{{Fee: -10}},
	}
	if err := svc.Create(context.Background(), sb); err == nil {
		t.Error("expected error for negative visit fee")
	}
}

func TestCreateSuperbill_KeepsExplicitClinicFields(t *testing.T) {
	svc, _ := newTestService()
	sb := &Superbill{
		PatientName: "Jane Doe",
		ClinicName:  "Satellite Office",
	}
	if err := svc.Create(context.Background(), sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sb.ClinicName != "Satellite Office" {
		t.Errorf("explicit clinic name must not be overwritten, got %q", sb.ClinicName)
	}
	if sb.NPI != "1234567890" {
		t.Errorf("blank fields still get defaults, got %q", sb.NPI)
	}
}

type recordingNotifier struct {
	id     uuid.UUID
	status string
}

func (r *recordingNotifier) SuperbillStatusChanged(_ context.Context, id uuid.UUID, status string) {
	r.id = id
	r.status = status
}

func TestChangeStatus(t *testing.T) {
	svc, _ := newTestService()
	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)

	sb := &Superbill{PatientName: "Jane Doe"}
	if err := svc.Create(context.Background(), sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ChangeStatus(context.Background(), sb.ID, StatusInReview); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(context.Background(), sb.ID)
	if got.Status != StatusInReview {
		t.Errorf("expected status in_review, got %s", got.Status)
	}
	if notifier.id != sb.ID || notifier.status != StatusInReview {
		t.Error("expected notifier to observe the status change")
	}
}

func TestChangeStatus_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.ChangeStatus(context.Background(), uuid.New(), "done"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestSearch_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Search(context.Background(), "", "bogus", 20, 0); err == nil {
		t.Error("expected error for unknown status filter")
	}
}
