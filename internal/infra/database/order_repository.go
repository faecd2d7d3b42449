package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `id, order_number, client_id, order_type, status, amount, items, payment_status, notes, created_at, updated_at`

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	var o entity.Order
	var clientID sql.NullString
	var items []byte
	err := r.DB.QueryRowContext(ctx, query, orderNumber).Scan(
		&o.ID,
		&o.OrderNumber,
		&clientID,
		&o.OrderType,
		&o.Status,
		&o.Amount,
		&items,
		&o.PaymentStatus,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	o.ClientID = clientID.String
	o.Items = []entity.OrderItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("itens do pedido %s corrompidos: %w", orderNumber, err)
		}
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("erro ao serializar itens: %w", err)
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	// items vai como string: []byte seria enviado como bytea pelo lib/pq.
	_, err = r.DB.ExecContext(ctx, query,
		o.ID,
		o.OrderNumber,
		nullString(o.ClientID),
		o.OrderType,
		o.Status,
		o.Amount,
		string(items),
		o.PaymentStatus,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pedido %s: %w", o.OrderNumber, entity.ErrOrderNumberConflict)
		}
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("erro ao serializar itens: %w", err)
	}

	query := `
		UPDATE orders
		SET client_id = $2, order_type = $3, status = $4, amount = $5, items = $6,
		    payment_status = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		o.ID,
		nullString(o.ClientID),
		o.OrderType,
		o.Status,
		o.Amount,
		string(items),
		o.PaymentStatus,
		o.Notes,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pedido: %w", err)
	}
	return expectOneRow(res, entity.ErrOrderNotFound)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderNumber, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE order_number = $2`
	res, err := r.DB.ExecContext(ctx, query, status, orderNumber)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do pedido: %w", err)
	}
	return expectOneRow(res, entity.ErrOrderNotFound)
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
