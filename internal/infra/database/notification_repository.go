package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, message, entity_type, entity_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Message,
		nullString(n.EntityType),
		nullString(n.EntityID),
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao criar notificação: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error) {
	query := `SELECT id, user_id, message, entity_type, entity_id, is_read, created_at FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT 100`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar notificações: %w", err)
	}
	defer rows.Close()

	notifications := []*entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		var entityType, entityID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &entityType, &entityID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear notificação: %w", err)
		}
		n.EntityType = entityType.String
		n.EntityID = entityID.String
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar notificações: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao marcar notificação como lida: %w", err)
	}
	return expectOneRow(res, entity.ErrNotificationNotFound)
}
