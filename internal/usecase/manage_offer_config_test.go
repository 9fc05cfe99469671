package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func validOfferInput() OfferConfigInput {
	return OfferConfigInput{
		NicheName:        "dentists",
		ICPDescription:   "clinic owners",
		OfferDescription: "more bookings",
		FromName:         "Bruno",
		FromEmail:        "bruno@outreach.io",
		CalendlyURL:      "https://calendly.com/bruno/intro",
	}
}

func TestGetOfferConfig(t *testing.T) {
	repo := new(MockOfferConfigRepository)
	repo.On("Get", mock.Anything).Return(nil, entity.ErrOfferConfigNotFound).Once()
	repo.On("Get", mock.Anything).Return(newTestOffer(), nil).Once()
	uc := NewGetOfferConfigUseCase(repo)

	_, err := uc.Execute(context.Background())
	assert.Equal(t, CodeOfferConfigNotFound, ErrorCode(err))

	cfg, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bruno", cfg.FromName)
}

func TestUpsertOfferConfig(t *testing.T) {
	repo := new(MockOfferConfigRepository)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(cfg *entity.OfferConfig) bool {
		return cfg.NicheName == "dentists" && cfg.CalendlyURL == "https://calendly.com/bruno/intro"
	})).Return(nil)

	input := validOfferInput()
	input.NicheName = "  dentists "
	cfg, err := NewUpsertOfferConfigUseCase(repo).Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "dentists", cfg.NicheName)
	repo.AssertExpectations(t)
}

func TestUpsertOfferConfig_Validation(t *testing.T) {
	repo := new(MockOfferConfigRepository)
	input := validOfferInput()
	input.FromEmail = "bruno"
	input.CalendlyURL = "calendly"

	_, err := NewUpsertOfferConfigUseCase(repo).Execute(context.Background(), input)

	require.Error(t, err)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.ElementsMatch(t, []ValidationError{
		{"fromEmail", "is invalid"},
		{"calendlyUrl", "must be a valid URL"},
	}, de.Fields)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpsertOfferConfig_StoreError(t *testing.T) {
	repo := new(MockOfferConfigRepository)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := NewUpsertOfferConfigUseCase(repo).Execute(context.Background(), validOfferInput())

	assert.Equal(t, CodeDatabase, ErrorCode(err))
}
