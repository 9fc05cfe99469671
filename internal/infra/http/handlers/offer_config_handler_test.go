package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

func newOfferHandler(repo *mockOfferRepo) *OfferConfigHandler {
	return NewOfferConfigHandler(usecase.NewGetOfferConfigUseCase(repo), usecase.NewUpsertOfferConfigUseCase(repo))
}

func TestOfferConfigHandler_GetMissing(t *testing.T) {
	repo := new(mockOfferRepo)
	repo.On("Get", mock.Anything).Return(nil, entity.ErrOfferConfigNotFound)
	rec := httptest.NewRecorder()

	newOfferHandler(repo).Get(rec, httptest.NewRequest(http.MethodGet, "/api/offer-config", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeOfferConfigNotFound)
}

func TestOfferConfigHandler_Put(t *testing.T) {
	repo := new(mockOfferRepo)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	body := `{"nicheName":"dentists","icpDescription":"owners","offerDescription":"more bookings",
		"fromName":"Bruno","fromEmail":"bruno@outreach.io","calendlyUrl":"https://calendly.com/bruno"}`
	rec := httptest.NewRecorder()

	newOfferHandler(repo).Put(rec, httptest.NewRequest(http.MethodPut, "/api/offer-config", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"calendlyUrl":"https://calendly.com/bruno"`)
}

func TestOfferConfigHandler_PutInvalid(t *testing.T) {
	repo := new(mockOfferRepo)
	rec := httptest.NewRecorder()

	newOfferHandler(repo).Put(rec, httptest.NewRequest(http.MethodPut, "/api/offer-config", strings.NewReader(`{"nicheName":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fields"`)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
