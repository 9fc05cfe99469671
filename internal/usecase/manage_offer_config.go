package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type GetOfferConfigUseCase struct {
	Repo entity.OfferConfigRepositoryInterface
}

func NewGetOfferConfigUseCase(repo entity.OfferConfigRepositoryInterface) *GetOfferConfigUseCase {
	return &GetOfferConfigUseCase{Repo: repo}
}

func (uc *GetOfferConfigUseCase) Execute(ctx context.Context) (*entity.OfferConfig, error) {
	cfg, err := uc.Repo.Get(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrOfferConfigNotFound) {
			return nil, &DomainError{Code: CodeOfferConfigNotFound, Message: "offer config not found"}
		}
		return nil, databaseError("failed to load offer config", err)
	}
	return cfg, nil
}

type UpsertOfferConfigUseCase struct {
	Repo entity.OfferConfigRepositoryInterface
}

func NewUpsertOfferConfigUseCase(repo entity.OfferConfigRepositoryInterface) *UpsertOfferConfigUseCase {
	return &UpsertOfferConfigUseCase{Repo: repo}
}

// Execute replaces the singleton offer profile, creating it on first use.
func (uc *UpsertOfferConfigUseCase) Execute(ctx context.Context, input OfferConfigInput) (*entity.OfferConfig, error) {
	if errs := ValidateOfferConfigInput(&input); len(errs) > 0 {
		return nil, validationFailed(validationMessage(errs), errs...)
	}

	now := time.Now()
	cfg := &entity.OfferConfig{
		NicheName:        input.NicheName,
		ICPDescription:   input.ICPDescription,
		OfferDescription: input.OfferDescription,
		FromName:         input.FromName,
		FromEmail:        input.FromEmail,
		CalendlyURL:      input.CalendlyURL,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.Repo.Upsert(ctx, cfg); err != nil {
		return nil, databaseError("failed to save offer config", err)
	}
	return cfg, nil
}
