package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type SubmissionIngestor interface {
	Execute(ctx context.Context, p *usecase.Payload) (*usecase.IngestOutput, error)
}

type WebhookHandler struct {
	IngestUC     SubmissionIngestor
	MaxBodyBytes int64
}

func NewWebhookHandler(uc SubmissionIngestor, maxBodyBytes int64) *WebhookHandler {
	return &WebhookHandler{IngestUC: uc, MaxBodyBytes: maxBodyBytes}
}

type WebhookResponse struct {
	Success bool   `json:"success"`
	Type    string `json:"type,omitempty"`
	Action  string `json:"action,omitempty"`
	Data    any    `json:"data,omitempty"`
	Test    bool   `json:"test,omitempty"`
}

// Handle recebe leads, quizzes e pedidos do construtor de sites, em JSON ou urlencoded.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	if err != nil {
		log.Printf("❌ [WEBHOOK] falha ao ler corpo: %v", err)
		middleware.RecordSubmission("unknown", "parse_error")
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeParse, "could not read request body")
		return
	}

	payload, err := usecase.DecodePayload(body, r.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("❌ [WEBHOOK] corpo ilegível (%s): %v", r.Header.Get("Content-Type"), err)
		middleware.RecordSubmission("unknown", "parse_error")
		writeError(w, err)
		return
	}

	if usecase.IsTestPing(payload) {
		writeJSON(w, http.StatusOK, WebhookResponse{Success: true, Test: true})
		return
	}

	kind := string(usecase.Classify(payload))
	output, err := h.IngestUC.Execute(r.Context(), payload)
	if err != nil {
		log.Printf("❌ [WEBHOOK] falha ao processar %s: %v", kind, err)
		status, _ := statusForError(err)
		if status == http.StatusBadRequest {
			middleware.RecordSubmission(kind, "rejected")
		} else {
			middleware.RecordSubmission(kind, "failed")
		}
		writeError(w, err)
		return
	}

	outcome := usecase.ActionCreated
	if output.Action != "" {
		outcome = output.Action
	}
	middleware.RecordSubmission(string(output.Kind), outcome)
	if !output.NotificationSent {
		middleware.RecordNotificationFailure()
	}

	writeJSON(w, http.StatusOK, WebhookResponse{
		Success: true,
		Type:    string(output.Kind),
		Action:  output.Action,
		Data:    output.Data,
	})
}
