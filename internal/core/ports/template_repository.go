package ports

import (
	"context"

	"github.com/mailforge/template-service/internal/core/domain"
)

// TemplateRepository persists templates. Every method takes the owner id and
// must apply it inside the store query itself, so no caller can reach another
// tenant's records regardless of the id it supplies.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.Template) (*domain.Template, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Template, error)
	FindByID(ctx context.Context, ownerID, id string) (*domain.Template, error)
	Update(ctx context.Context, ownerID, id, name, subject, body string) error
	Delete(ctx context.Context, ownerID, id string) error
}
