package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/router"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DatabaseURL, database.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("❌ Erro ao conectar no banco: %v", err)
	}
	defer db.Close()

	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("❌ Erro ao criar schema: %v", err)
	}

	// RabbitMQ é opcional: sem ele não há alertas por email, o resto segue.
	var events usecase.EventPublisher
	healthHandler := handlers.NewHealthHandler(db, nil)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️ RabbitMQ indisponível, alertas desligados: %v", err)
		} else {
			defer rabbitMQ.Close()
			events = queue.NewProducer(rabbitMQ.Ch)
			healthHandler.RabbitMQ = rabbitMQ.Conn
		}
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	contactRepo := database.NewContactRepository(db)
	orderRepo := database.NewOrderRepository(db)
	notificationRepo := database.NewNotificationRepository(db)

	// 2. UseCases
	notifier := usecase.NewNotifier(notificationRepo)
	leadUC := usecase.NewCreateLeadUseCase(leadRepo, notifier, events, cfg.SystemUserID)
	orderUC := usecase.NewUpsertOrderUseCase(orderRepo, contactRepo, notifier, events, cfg.SystemUserID)
	ingestUC := usecase.NewIngestSubmissionUseCase(leadUC, orderUC)
	statusUC := usecase.NewUpdateOrderStatusUseCase(orderRepo, notifier, events, cfg.SystemUserID)

	// 3. Router
	r := router.New(router.Handlers{
		Webhook:       handlers.NewWebhookHandler(ingestUC, cfg.MaxBodyBytes),
		Orders:        handlers.NewOrderHandler(orderRepo, statusUC),
		Notifications: handlers.NewNotificationHandler(notificationRepo),
		Health:        healthHandler,
	}, router.Options{
		WebhookSecret:  cfg.WebhookSecret,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️ Erro no shutdown: %v", err)
		}
	}()

	log.Printf("🔥 Server CRM rodando na porta %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Servidor caiu: %v", err)
	}
	log.Println("👋 Server encerrado")
}
