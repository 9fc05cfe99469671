package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func templateNotFound() *DomainError {
	return &DomainError{Code: CodeTemplateNotFound, Message: "template not found"}
}

type CreateTemplateUseCase struct {
	Repo entity.TemplateRepositoryInterface
}

func NewCreateTemplateUseCase(repo entity.TemplateRepositoryInterface) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{Repo: repo}
}

// Execute stores a template. Single-brace references to known variables
// are upgraded to {{name}} and the output says whether that happened.
func (uc *CreateTemplateUseCase) Execute(ctx context.Context, input TemplateInput) (*TemplateOutput, error) {
	if errs := ValidateTemplateInput(&input); len(errs) > 0 {
		return nil, validationFailed(validationMessage(errs), errs...)
	}

	subject, subjectChanged := NormalizeVariableSyntax(input.Subject)
	body, bodyChanged := NormalizeVariableSyntax(input.Body)

	tpl := entity.NewTemplate(input.Name, subject, body)
	if err := uc.Repo.Create(ctx, tpl); err != nil {
		return nil, databaseError("failed to create template", err)
	}
	return &TemplateOutput{Template: tpl, VariablesNormalized: subjectChanged || bodyChanged}, nil
}

type UpdateTemplateUseCase struct {
	Repo entity.TemplateRepositoryInterface
}

func NewUpdateTemplateUseCase(repo entity.TemplateRepositoryInterface) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{Repo: repo}
}

func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, id string, input TemplateInput) (*TemplateOutput, error) {
	if errs := ValidateTemplateInput(&input); len(errs) > 0 {
		return nil, validationFailed(validationMessage(errs), errs...)
	}

	tpl, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			return nil, templateNotFound()
		}
		return nil, databaseError("failed to load template", err)
	}

	subject, subjectChanged := NormalizeVariableSyntax(input.Subject)
	body, bodyChanged := NormalizeVariableSyntax(input.Body)
	tpl.Name = input.Name
	tpl.Subject = subject
	tpl.Body = body
	tpl.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, tpl); err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			return nil, templateNotFound()
		}
		return nil, databaseError("failed to update template", err)
	}
	return &TemplateOutput{Template: tpl, VariablesNormalized: subjectChanged || bodyChanged}, nil
}

type GetTemplateUseCase struct {
	Repo entity.TemplateRepositoryInterface
}

func NewGetTemplateUseCase(repo entity.TemplateRepositoryInterface) *GetTemplateUseCase {
	return &GetTemplateUseCase{Repo: repo}
}

func (uc *GetTemplateUseCase) Execute(ctx context.Context, id string) (*entity.Template, error) {
	tpl, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			return nil, templateNotFound()
		}
		return nil, databaseError("failed to load template", err)
	}
	return tpl, nil
}

type ListTemplatesUseCase struct {
	Repo entity.TemplateRepositoryInterface
}

func NewListTemplatesUseCase(repo entity.TemplateRepositoryInterface) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{Repo: repo}
}

func (uc *ListTemplatesUseCase) Execute(ctx context.Context) ([]*entity.Template, error) {
	templates, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, databaseError("failed to list templates", err)
	}
	if templates == nil {
		templates = []*entity.Template{}
	}
	return templates, nil
}

type DeleteTemplateUseCase struct {
	Repo entity.TemplateRepositoryInterface
}

func NewDeleteTemplateUseCase(repo entity.TemplateRepositoryInterface) *DeleteTemplateUseCase {
	return &DeleteTemplateUseCase{Repo: repo}
}

// Execute deletes the template. Past outreach messages keep their rendered
// content; their template reference is cleared by the store.
func (uc *DeleteTemplateUseCase) Execute(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			return templateNotFound()
		}
		return databaseError("failed to delete template", err)
	}
	return nil
}
