package domain

import (
	"errors"
	"time"
)

// ErrTemplateNotFound is returned both when a template id does not exist and
// when it belongs to a different owner, so a caller cannot probe for other
// tenants' records.
var ErrTemplateNotFound = errors.New("template not found")

// Template is an email template owned by exactly one user. The owner is set
// at creation and never changes; every repository operation filters by it.
type Template struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"template_name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
