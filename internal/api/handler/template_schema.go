package handler

import "github.com/mailforge/template-service/internal/core/domain"

type templateRequest struct {
	Name    string `json:"template_name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type templateItem struct {
	ID      string `json:"id"`
	Name    string `json:"template_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type createTemplateResponse struct {
	TemplateID string `json:"template_id"`
	Message    string `json:"message"`
}

type listTemplatesResponse struct {
	Templates []templateItem `json:"templates"`
}

type getTemplateResponse struct {
	Template templateItem `json:"template"`
}

func toTemplateItem(t domain.Template) templateItem {
	return templateItem{
		ID:      t.ID,
		Name:    t.Name,
		Subject: t.Subject,
		Body:    t.Body,
	}
}
