package lettertemplate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var validKinds = map[string]bool{
	KindCoverLetterSingle: true,
	KindCoverLetterMulti:  true,
	KindCoverSheetIntro:   true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, t *LetterTemplate) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !validKinds[t.Kind] {
		return fmt.Errorf("invalid template kind: %s", t.Kind)
	}
	if strings.TrimSpace(t.Body) == "" {
		return fmt.Errorf("body is required")
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*LetterTemplate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, t *LetterTemplate) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !validKinds[t.Kind] {
		return fmt.Errorf("invalid template kind: %s", t.Kind)
	}
	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*LetterTemplate, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// RenderByKind renders the clinic's saved template for a kind, falling back
// to the built-in default when none has been saved.
func (s *Service) RenderByKind(ctx context.Context, kind string, vars map[string]string) (string, error) {
	if !validKinds[kind] {
		return "", fmt.Errorf("invalid template kind: %s", kind)
	}
	body := DefaultBody(kind)
	if t, err := s.repo.GetByKind(ctx, kind); err == nil && t != nil {
		body = t.Body
	}
	if body == "" {
		return "", fmt.Errorf("no template available for kind %s", kind)
	}
	return RenderHTML(body, vars)
}
