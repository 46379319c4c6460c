package ports

import (
	"context"

	"github.com/mailforge/template-service/internal/core/domain"
)

type TemplateService interface {
	Create(ctx context.Context, ownerID, name, subject, body string) (*domain.Template, error)
	List(ctx context.Context, ownerID string) ([]domain.Template, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Template, error)
	Update(ctx context.Context, ownerID, id, name, subject, body string) error
	Delete(ctx context.Context, ownerID, id string) error
}
