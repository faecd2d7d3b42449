package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// Notifier grava notificações in-app em modo fire-and-forget: qualquer falha
// é logada e vira false, nunca um erro para quem chamou.
type Notifier struct {
	Repo entity.NotificationRepositoryInterface
}

func NewNotifier(repo entity.NotificationRepositoryInterface) *Notifier {
	return &Notifier{Repo: repo}
}

func (n *Notifier) Notify(ctx context.Context, userID, message, entityType, entityID string) (ok bool) {
	if n == nil || n.Repo == nil {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️ [NOTIFIER] panic ao gravar notificação para %s: %v", userID, r)
			ok = false
		}
	}()

	notification := entity.NewNotification(userID, message, entityType, entityID)
	if err := n.Repo.Create(ctx, notification); err != nil {
		log.Printf("⚠️ [NOTIFIER] falha ao gravar notificação para %s (%s %s): %v", userID, entityType, entityID, err)
		return false
	}
	return true
}

// publishEvent tem a mesma política do Notifier: falha só vai para o log.
func publishEvent(ctx context.Context, publisher EventPublisher, event queue.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishEvent(ctx, event); err != nil {
		log.Printf("⚠️ [EVENTS] falha ao publicar %s (%s): %v", event.Type, event.EntityID, err)
	}
}
