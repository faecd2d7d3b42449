package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AlertSender entrega o alerta de um evento para a equipe comercial.
type AlertSender interface {
	SendAlert(subject string, fields map[string]string) error
}

type Worker struct {
	Channel *amqp.Channel
	Alerts  AlertSender
}

func NewWorker(ch *amqp.Channel, alerts AlertSender) *Worker {
	return &Worker{
		Channel: ch,
		Alerts:  alerts,
	}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ [WORKER] encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("canal do RabbitMQ fechado")
			}
			w.handleDelivery(d)
		}
	}
}

func (w *Worker) handleDelivery(d amqp.Delivery) {
	var event Event
	if err := json.Unmarshal(d.Body, &event); err != nil {
		log.Printf("❌ [WORKER] JSON inválido: %s", err)
		// Mensagem malformada vai para a DLQ, sem requeue.
		d.Nack(false, false)
		return
	}

	if err := w.processMessage(event); err != nil {
		log.Printf("❌ [WORKER] erro ao enviar alerta de %s (%s): %s", event.Type, event.EntityID, err)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}

func (w *Worker) processMessage(event Event) error {
	switch event.Type {
	case EventLeadCreated, EventOrderCreated, EventOrderUpdated, EventOrderStatusChanged:
		fields := make(map[string]string, len(event.Details)+2)
		for k, v := range event.Details {
			fields[k] = v
		}
		fields["entity"] = event.EntityType + "/" + event.EntityID
		fields["occurred_at"] = event.OccurredAt.Format("2006-01-02 15:04:05")
		return w.Alerts.SendAlert(event.Title, fields)

	default:
		// Tipo desconhecido: só loga e confirma, para não travar a fila.
		log.Printf("⚠️ [WORKER] evento desconhecido: %q", event.Type)
		return nil
	}
}
