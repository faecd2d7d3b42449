package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type UpdateOrderStatusInput struct {
	OrderNumber string `json:"-"`
	Status      string `json:"status"`
}

// UpdateOrderStatusUseCase move um pedido entre as colunas do Kanban.
type UpdateOrderStatusUseCase struct {
	OrderRepo    entity.OrderRepositoryInterface
	Notifier     *Notifier
	Events       EventPublisher
	SystemUserID string
}

func NewUpdateOrderStatusUseCase(
	orderRepo entity.OrderRepositoryInterface,
	notifier *Notifier,
	events EventPublisher,
	systemUserID string,
) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		OrderRepo:    orderRepo,
		Notifier:     notifier,
		Events:       events,
		SystemUserID: systemUserID,
	}
}

func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, input UpdateOrderStatusInput) (*entity.Order, error) {
	status := strings.TrimSpace(input.Status)
	if err := requireField("status", status); err != nil {
		return nil, err
	}
	if !entity.IsValidOrderStatus(status) {
		return nil, &DomainError{
			Code:    CodeInvalidStatus,
			Message: fmt.Sprintf("status must be one of: %s", strings.Join(entity.OrderStatuses, ", ")),
		}
	}

	if err := uc.OrderRepo.UpdateStatus(ctx, input.OrderNumber, status); err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			return nil, &DomainError{Code: CodeOrderNotFound, Message: "order " + input.OrderNumber + " not found"}
		}
		return nil, newStoreError("failed to update order status", err)
	}

	order, err := uc.OrderRepo.FindByOrderNumber(ctx, input.OrderNumber)
	if err != nil {
		return nil, newStoreError("failed to reload order", err)
	}
	log.Printf("🔄 [ORDER] pedido %s movido para %q", order.OrderNumber, status)

	message := fmt.Sprintf("Order #%s moved to %s", order.OrderNumber, status)
	uc.Notifier.Notify(ctx, uc.SystemUserID, message, entity.EntityTypeOrder, order.ID)

	publishEvent(ctx, uc.Events, queue.Event{
		Type:       queue.EventOrderStatusChanged,
		EntityType: entity.EntityTypeOrder,
		EntityID:   order.ID,
		Title:      message,
		Details:    map[string]string{"order_number": order.OrderNumber, "status": status},
		OccurredAt: time.Now(),
	})

	return order, nil
}
