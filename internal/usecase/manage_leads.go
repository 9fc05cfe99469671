package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func leadNotFound() *DomainError {
	return &DomainError{Code: CodeLeadNotFound, Message: "lead not found"}
}

type CreateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo}
}

// Execute stores a new lead. Status is always NEW regardless of input.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input LeadInput) (*entity.Lead, error) {
	if errs := ValidateLeadInput(&input); len(errs) > 0 {
		return nil, validationFailed(validationMessage(errs), errs...)
	}

	lead := entity.NewLead(input.FirstName, input.LastName, input.CompanyName, input.Email, input.Phone, input.Location, input.Notes)
	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, databaseError("failed to create lead", err)
	}
	return lead, nil
}

type ListLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(repo entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context, status string) ([]*entity.Lead, error) {
	filter := entity.LeadFilter{}
	if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
		filter.Status = entity.LeadStatus(status)
		if !filter.Status.Valid() {
			return nil, validationFailed("invalid status filter", ValidationError{"status", "is invalid"})
		}
	}

	leads, err := uc.Repo.List(ctx, filter)
	if err != nil {
		return nil, databaseError("failed to list leads", err)
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

type GetLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Messages entity.OutreachMessageRepositoryInterface
}

func NewGetLeadUseCase(repo entity.LeadRepositoryInterface, messages entity.OutreachMessageRepositoryInterface) *GetLeadUseCase {
	return &GetLeadUseCase{Repo: repo, Messages: messages}
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, id string) (*LeadDetailOutput, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, leadNotFound()
		}
		return nil, databaseError("failed to load lead", err)
	}

	messages, err := uc.Messages.ListByLeadID(ctx, lead.ID)
	if err != nil {
		return nil, databaseError("failed to load outreach messages", err)
	}
	if messages == nil {
		messages = []*entity.OutreachMessage{}
	}
	return &LeadDetailOutput{Lead: lead, Messages: messages}, nil
}

type UpdateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo}
}

// Execute replaces the editable profile fields. A non-empty Status is an
// operator decision (REPLIED, LOST, ...) and is applied as-is.
// LastContactedAt is never touched here.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id string, input LeadInput) (*entity.Lead, error) {
	if errs := ValidateLeadInput(&input); len(errs) > 0 {
		return nil, validationFailed(validationMessage(errs), errs...)
	}

	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, leadNotFound()
		}
		return nil, databaseError("failed to load lead", err)
	}

	lead.FirstName = input.FirstName
	lead.LastName = input.LastName
	lead.CompanyName = input.CompanyName
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.Location = input.Location
	lead.Notes = input.Notes
	if input.Status != "" {
		lead.Status = entity.LeadStatus(input.Status)
	}
	lead.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, leadNotFound()
		}
		return nil, databaseError("failed to update lead", err)
	}
	return lead, nil
}

type DeleteLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewDeleteLeadUseCase(repo entity.LeadRepositoryInterface) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Repo: repo}
}

// Execute removes the lead. Its outreach messages go with it (FK cascade).
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return leadNotFound()
		}
		return databaseError("failed to delete lead", err)
	}
	return nil
}

type CaptureLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewCaptureLeadUseCase(repo entity.LeadRepositoryInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{Repo: repo}
}

// Execute upserts by email: a known lead gets its blank fields filled in,
// an unknown email becomes a NEW lead.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	input.Email = entity.NormalizeEmail(input.Email)
	if errs := validateStruct(&input); len(errs) > 0 {
		return nil, validationFailed(validationMessage(errs), errs...)
	}

	first, last := strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName)
	if first == "" && last == "" && input.Name != "" {
		first, last = splitName(input.Name)
	}

	lead := entity.NewLead(first, last, input.CompanyName, input.Email, input.Phone, "", "")
	if err := uc.Repo.Upsert(ctx, lead); err != nil {
		return nil, databaseError("failed to capture lead", err)
	}
	return lead, nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
