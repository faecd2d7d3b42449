package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type UpsertOrderUseCase struct {
	OrderRepo    entity.OrderRepositoryInterface
	ContactRepo  entity.ContactRepositoryInterface
	Notifier     *Notifier
	Events       EventPublisher
	SystemUserID string
}

func NewUpsertOrderUseCase(
	orderRepo entity.OrderRepositoryInterface,
	contactRepo entity.ContactRepositoryInterface,
	notifier *Notifier,
	events EventPublisher,
	systemUserID string,
) *UpsertOrderUseCase {
	return &UpsertOrderUseCase{
		OrderRepo:    orderRepo,
		ContactRepo:  contactRepo,
		Notifier:     notifier,
		Events:       events,
		SystemUserID: systemUserID,
	}
}

// Execute cria ou atualiza o pedido pelo número externo. Existe no máximo um
// pedido por número: a checagem prévia decide entre update e insert, e a
// constraint UNIQUE do banco derruba o insert concorrente.
func (uc *UpsertOrderUseCase) Execute(ctx context.Context, p *Payload) (*IngestOutput, error) {
	orderNumber := p.String(orderNumberKeys...)
	if err := requireField("orderid", orderNumber); err != nil {
		return nil, err
	}

	// O contato pode ficar órfão se a gravação do pedido falhar depois.
	clientID, err := uc.resolveClient(ctx, p)
	if err != nil {
		return nil, err
	}

	amount, _ := p.Float("amount")
	items := NormalizeItems(productsValue(p), orderNumber, amount)
	total := ComputeTotal(items, amount)
	paymentStatus := MapPaymentStatus(p.String(paymentStatusKeys...))
	notes := orderNotes(p)

	existing, err := uc.OrderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil && !errors.Is(err, entity.ErrOrderNotFound) {
		return nil, newStoreError("failed to look up order", err)
	}

	action := ActionCreated
	order := existing
	if order == nil {
		order = entity.NewOrder(orderNumber)
	} else {
		action = ActionUpdated
		order.OrderType = entity.OrderTypeDefault
		order.Status = entity.OrderStatusNew
		order.UpdatedAt = time.Now()
	}

	order.ClientID = clientID
	order.Amount = total
	order.Items = items
	order.PaymentStatus = paymentStatus
	order.Notes = notes

	if action == ActionCreated {
		err = uc.OrderRepo.Create(ctx, order)
	} else {
		err = uc.OrderRepo.Update(ctx, order)
	}
	if err != nil {
		if errors.Is(err, entity.ErrOrderNumberConflict) {
			return nil, &TechnicalError{
				Code:    CodeOrderConflict,
				Message: fmt.Sprintf("order %s was created concurrently, resend to update it", orderNumber),
				Err:     err,
			}
		}
		return nil, newStoreError("failed to save order", err)
	}
	log.Printf("✅ [ORDER] pedido %s %s (%s, total %.2f, %s)", orderNumber, action, order.ID, order.Amount, order.PaymentStatus)

	message := fmt.Sprintf("New order #%s: %.2f", orderNumber, order.Amount)
	eventType := queue.EventOrderCreated
	if action == ActionUpdated {
		message = fmt.Sprintf("Order #%s updated: %.2f", orderNumber, order.Amount)
		eventType = queue.EventOrderUpdated
	}
	sent := uc.Notifier.Notify(ctx, uc.SystemUserID, message, entity.EntityTypeOrder, order.ID)

	publishEvent(ctx, uc.Events, queue.Event{
		Type:       eventType,
		EntityType: entity.EntityTypeOrder,
		EntityID:   order.ID,
		Title:      message,
		Details: map[string]string{
			"order_number":   order.OrderNumber,
			"client_id":      order.ClientID,
			"amount":         strconv.FormatFloat(order.Amount, 'f', 2, 64),
			"payment_status": order.PaymentStatus,
			"items":          strconv.Itoa(len(order.Items)),
			"notes":          order.Notes,
		},
		OccurredAt: time.Now(),
	})

	return &IngestOutput{Kind: KindOrder, Action: action, Data: order, NotificationSent: sent}, nil
}

// resolveClient reaproveita o primeiro contato com telefone/email parecido ou
// cria um novo. Nunca atualiza um contato existente.
func (uc *UpsertOrderUseCase) resolveClient(ctx context.Context, p *Payload) (string, error) {
	phone := p.String("phone")
	email := p.String("email")

	if phone != "" || email != "" {
		existing, err := uc.ContactRepo.FindByPhoneOrEmail(ctx, phone, email)
		if err != nil {
			return "", newStoreError("failed to search contacts", err)
		}
		if existing != nil {
			log.Printf("📱 [ORDER] contato existente reaproveitado: %s", existing.ID)
			return existing.ID, nil
		}
	}

	name := p.String("name")
	if name == "" {
		name = "Client from " + formLabel(p, "website")
	}

	contact := entity.NewContact(name, phone, email)
	if err := uc.ContactRepo.Create(ctx, contact); err != nil {
		return "", newStoreError("failed to create contact", err)
	}
	log.Printf("✅ [ORDER] novo contato criado: %s (%s)", contact.ID, contact.Name)
	return contact.ID, nil
}

func productsValue(p *Payload) any {
	v, _ := p.Get(productsKey)
	return v
}

func orderNotes(p *Payload) string {
	notes := "Source: " + formLabel(p, "website")
	if comment := p.Text("comment"); comment != "" {
		notes += "\n\n" + comment
	}
	return notes
}
