package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// EventPublisher publica eventos de ingestão para o worker de alertas.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event queue.Event) error
}

// IngestOutput é o resultado de uma submissão processada com sucesso.
// NotificationSent é só para métricas: nunca altera o sucesso da operação.
type IngestOutput struct {
	Kind             SubmissionKind `json:"type"`
	Action           string         `json:"action,omitempty"`
	Data             any            `json:"data"`
	NotificationSent bool           `json:"-"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)
