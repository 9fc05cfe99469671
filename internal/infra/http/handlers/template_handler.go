package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type TemplateHandler struct {
	CreateUC *usecase.CreateTemplateUseCase
	UpdateUC *usecase.UpdateTemplateUseCase
	GetUC    *usecase.GetTemplateUseCase
	ListUC   *usecase.ListTemplatesUseCase
	DeleteUC *usecase.DeleteTemplateUseCase
}

func NewTemplateHandler(
	create *usecase.CreateTemplateUseCase,
	update *usecase.UpdateTemplateUseCase,
	get *usecase.GetTemplateUseCase,
	list *usecase.ListTemplatesUseCase,
	del *usecase.DeleteTemplateUseCase,
) *TemplateHandler {
	return &TemplateHandler{CreateUC: create, UpdateUC: update, GetUC: get, ListUC: list, DeleteUC: del}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.ListUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.TemplateInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON")
		return
	}

	out, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.GetUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.TemplateInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON")
		return
	}

	out, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DeleteUC.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
