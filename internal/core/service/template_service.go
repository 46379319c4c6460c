package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mailforge/template-service/internal/core/domain"
	"github.com/mailforge/template-service/internal/core/ports"
)

// TemplateService implements owner-scoped template CRUD. The owner id comes
// from the authenticated caller, never from the request payload.
type TemplateService struct {
	repo ports.TemplateRepository
	log  zerolog.Logger
}

func NewTemplateService(repo ports.TemplateRepository, log zerolog.Logger) *TemplateService {
	return &TemplateService{repo: repo, log: log}
}

func (s *TemplateService) Create(ctx context.Context, ownerID, name, subject, body string) (*domain.Template, error) {
	if name == "" || subject == "" || body == "" {
		return nil, domain.ErrValidation
	}

	created, err := s.repo.Create(ctx, &domain.Template{
		OwnerID: ownerID,
		Name:    name,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("template_id", created.ID).Str("user_id", ownerID).Msg("template created")
	return created, nil
}

func (s *TemplateService) List(ctx context.Context, ownerID string) ([]domain.Template, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TemplateService) Get(ctx context.Context, ownerID, id string) (*domain.Template, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// Update replaces all three content fields in one write; a partial update is
// never observable.
func (s *TemplateService) Update(ctx context.Context, ownerID, id, name, subject, body string) error {
	if name == "" || subject == "" || body == "" {
		return domain.ErrValidation
	}
	return s.repo.Update(ctx, ownerID, id, name, subject, body)
}

func (s *TemplateService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}
