package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRange(ctx context.Context, from, to time.Time) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
}
