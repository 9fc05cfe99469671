package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
	"go.uber.org/zap"
)

type OutreachHandler struct {
	SendOutreachUC *usecase.SendOutreachUseCase
	Logger         *zap.Logger
}

func NewOutreachHandler(uc *usecase.SendOutreachUseCase, logger *zap.Logger) *OutreachHandler {
	return &OutreachHandler{SendOutreachUC: uc, Logger: logger}
}

type SendOutreachResponse struct {
	Success bool     `json:"success"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// Send handles POST /api/outreach/send. Per-lead failures are part of a
// 200 response; only batch preconditions produce an error status.
func (h *OutreachHandler) Send(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendOutreachInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "invalid JSON")
		return
	}

	out, err := h.SendOutreachUC.Execute(r.Context(), input)
	if err != nil {
		if statusForError(err) >= http.StatusInternalServerError {
			h.Logger.Error("outreach send failed", zap.Error(err))
		}
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOutreachBatch(out.Sent, out.Failed)
	writeJSON(w, http.StatusOK, SendOutreachResponse{
		Success: true,
		Sent:    out.Sent,
		Failed:  out.Failed,
		Errors:  out.Errors,
	})
}
