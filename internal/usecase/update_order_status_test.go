package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

func newStatusUseCase() (*UpdateOrderStatusUseCase, *MockOrderRepository, *MockNotificationRepository, *MockEventPublisher) {
	orders := new(MockOrderRepository)
	notifs := new(MockNotificationRepository)
	events := new(MockEventPublisher)
	return NewUpdateOrderStatusUseCase(orders, NewNotifier(notifs), events, testSystemUserID), orders, notifs, events
}

func TestUpdateOrderStatusSuccess(t *testing.T) {
	uc, orders, notifs, events := newStatusUseCase()
	orders.On("UpdateStatus", mock.Anything, "1001", entity.OrderStatusShipped).Return(nil)
	orders.On("FindByOrderNumber", mock.Anything, "1001").Return(&entity.Order{ID: "o1", OrderNumber: "1001", Status: entity.OrderStatusShipped}, nil)
	notifs.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.Message == "Order #1001 moved to Shipped"
	})).Return(nil)
	events.On("PublishEvent", mock.Anything, mock.MatchedBy(func(e queue.Event) bool {
		return e.Type == queue.EventOrderStatusChanged && e.Details["status"] == entity.OrderStatusShipped
	})).Return(nil)

	order, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderNumber: "1001", Status: " Shipped "})

	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	orders.AssertExpectations(t)
	notifs.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	uc, orders, _, _ := newStatusUseCase()

	_, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderNumber: "1001", Status: "Lost"})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeInvalidStatus, de.Code)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusRequiresStatus(t *testing.T) {
	uc, _, _, _ := newStatusUseCase()

	_, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderNumber: "1001"})

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	uc, orders, _, _ := newStatusUseCase()
	orders.On("UpdateStatus", mock.Anything, "404", entity.OrderStatusNew).Return(entity.ErrOrderNotFound)

	_, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderNumber: "404", Status: "New"})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeOrderNotFound, de.Code)
}

func TestUpdateOrderStatusStoreFailure(t *testing.T) {
	uc, orders, _, _ := newStatusUseCase()
	orders.On("UpdateStatus", mock.Anything, "1001", entity.OrderStatusNew).Return(errors.New("deadlock"))

	_, err := uc.Execute(context.Background(), UpdateOrderStatusInput{OrderNumber: "1001", Status: "New"})

	assert.True(t, IsTechnicalError(err))
}
