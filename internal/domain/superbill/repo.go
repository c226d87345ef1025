package superbill

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, sb *Superbill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Superbill, error)
	Update(ctx context.Context, sb *Superbill) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Superbill, int, error)
	ListByPatientName(ctx context.Context, patientName string) ([]*Superbill, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Superbill, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Superbill, int, error)
}
