package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var errNotFound = errors.New("not found")

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: map[uuid.UUID]*Appointment{}}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, errNotFound
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.appointments, id)
	return nil
}

func (m *mockRepo) ListByRange(_ context.Context, from, to time.Time) ([]*Appointment, error) {
	var items []*Appointment
	for _, a := range m.appointments {
		if a.StartsAt.Before(to) && a.EndsAt.After(from) {
			items = append(items, a)
		}
	}
	return items, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	var items []*Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			items = append(items, a)
		}
	}
	return items, nil
}

func validAppointment() *Appointment {
	return &Appointment{
		PatientID: uuid.New(),
		Title:     "Follow-up visit",
		StartsAt:  time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC),
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := NewService(newMockRepo())
	a := validAppointment()
	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("Status = %q, want %q", a.Status, StatusScheduled)
	}
	if a.ID == uuid.Nil {
		t.Error("id not assigned")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	tests := []struct {
		name   string
		mutate func(*Appointment)
	}{
		{"blank title", func(a *Appointment) { a.Title = "  " }},
		{"missing patient", func(a *Appointment) { a.PatientID = uuid.Nil }},
		{"zero start", func(a *Appointment) { a.StartsAt = time.Time{} }},
		{"end before start", func(a *Appointment) { a.EndsAt = a.StartsAt.Add(-time.Hour) }},
		{"end equals start", func(a *Appointment) { a.EndsAt = a.StartsAt }},
		{"bad status", func(a *Appointment) { a.Status = "pending" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment()
			tt.mutate(a)
			if err := svc.Create(context.Background(), a); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestListByRange_Overlap(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	inside := validAppointment()
	outside := validAppointment()
	outside.StartsAt = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	outside.EndsAt = outside.StartsAt.Add(time.Hour)
	for _, a := range []*Appointment{inside, outside} {
		if err := svc.Create(context.Background(), a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, err := svc.ListByRange(context.Background(),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListByRange: %v", err)
	}
	if len(items) != 1 || items[0].ID != inside.ID {
		t.Errorf("got %d appointments, want only the March one", len(items))
	}
}

func TestListByRange_InvalidRange(t *testing.T) {
	svc := NewService(newMockRepo())
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.ListByRange(context.Background(), from, from); err == nil {
		t.Fatal("expected error for empty range")
	}
}
