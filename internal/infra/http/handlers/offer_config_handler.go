package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type OfferConfigHandler struct {
	GetUC    *usecase.GetOfferConfigUseCase
	UpsertUC *usecase.UpsertOfferConfigUseCase
}

func NewOfferConfigHandler(get *usecase.GetOfferConfigUseCase, upsert *usecase.UpsertOfferConfigUseCase) *OfferConfigHandler {
	return &OfferConfigHandler{GetUC: get, UpsertUC: upsert}
}

func (h *OfferConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.GetUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *OfferConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var input usecase.OfferConfigInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON")
		return
	}

	cfg, err := h.UpsertUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
