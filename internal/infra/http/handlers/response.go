package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: message, Code: code})
}

// writeError traduz os erros do usecase para status HTTP.
func writeError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)

	// Detalhe do driver fica só no log.
	message := err.Error()
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		message = te.Message
	}
	writeErrorResponse(w, status, code, message)
}

func statusForError(err error) (int, string) {
	var ve usecase.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, usecase.CodeValidation
	}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		if de.Code == usecase.CodeOrderNotFound {
			return http.StatusNotFound, de.Code
		}
		return http.StatusBadRequest, de.Code
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		return http.StatusInternalServerError, te.Code
	}

	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
