package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps a use case error to its HTTP status. Technical
// errors never leak their wrapped cause to the client.
func writeUseCaseError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	resp := ErrorResponse{Error: usecase.ErrorCode(err), Message: err.Error()}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		resp.Fields = de.Fields
	} else if usecase.IsTechnicalError(err) {
		resp.Message = "internal error"
	}
	if resp.Error == "" {
		resp.Error = "INTERNAL_ERROR"
		resp.Message = "internal error"
	}
	writeJSON(w, status, resp)
}

func statusForError(err error) int {
	switch usecase.ErrorCode(err) {
	case usecase.CodeValidation:
		return http.StatusBadRequest
	case usecase.CodeAuthentication:
		return http.StatusUnauthorized
	case usecase.CodeTemplateNotFound, usecase.CodeOfferConfigNotFound, usecase.CodeLeadNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
