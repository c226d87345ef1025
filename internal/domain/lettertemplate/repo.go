package lettertemplate

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *LetterTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*LetterTemplate, error)
	GetByKind(ctx context.Context, kind string) (*LetterTemplate, error)
	Update(ctx context.Context, t *LetterTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*LetterTemplate, int, error)
}
