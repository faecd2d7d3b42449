package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNumberConflict = errors.New("order number already exists")
)

const (
	OrderTypeDefault = "Online"

	OrderStatusNew        = "New"
	OrderStatusInProgress = "In progress"
	OrderStatusShipped    = "Shipped"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"

	PaymentStatusPaid    = "Paid"
	PaymentStatusNotPaid = "Not paid"
)

// OrderStatuses são as colunas do quadro Kanban, na ordem de exibição.
var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ProductRef  string  `json:"product_ref"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

func (i OrderItem) Total() float64 {
	return i.Quantity * i.UnitPrice
}

type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	ClientID      string      `json:"client_id"`
	OrderType     string      `json:"order_type"`
	Status        string      `json:"status"`
	Amount        float64     `json:"amount"`
	Items         []OrderItem `json:"items"`
	PaymentStatus string      `json:"payment_status"`
	Notes         string      `json:"notes"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func NewOrder(orderNumber string) *Order {
	now := time.Now()
	return &Order{
		ID:          uuid.New().String(),
		OrderNumber: orderNumber,
		OrderType:   OrderTypeDefault,
		Status:      OrderStatusNew,
		Items:       []OrderItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type OrderRepositoryInterface interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	// Create falha com ErrOrderNumberConflict se o número já existir.
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	UpdateStatus(ctx context.Context, orderNumber, status string) error
}
