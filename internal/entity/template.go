package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewTemplate(name, subject, body string) *Template {
	now := time.Now()
	return &Template{
		ID:        uuid.New().String(),
		Name:      name,
		Subject:   subject,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type TemplateRepositoryInterface interface {
	Create(ctx context.Context, t *Template) error
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context) ([]*Template, error)
}
