package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

func main() {
	cfg := config.Load()

	if cfg.RabbitMQURL == "" {
		log.Fatal("❌ RABBITMQ_URL não configurada")
	}
	if cfg.AlertEmail == "" {
		log.Fatal("❌ ALERT_EMAIL não configurado")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("❌ Erro ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Close()

	mailSender := mail.NewEmailSender(
		cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.AlertEmail,
	)

	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	if err := worker.Start(ctx, queue.QueueName); err != nil {
		log.Fatalf("❌ Worker parou: %v", err)
	}
}
