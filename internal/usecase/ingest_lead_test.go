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

func newLeadUseCase() (*CreateLeadUseCase, *MockLeadRepository, *MockNotificationRepository, *MockEventPublisher) {
	leadRepo := new(MockLeadRepository)
	notifRepo := new(MockNotificationRepository)
	events := new(MockEventPublisher)
	uc := NewCreateLeadUseCase(leadRepo, NewNotifier(notifRepo), events, testSystemUserID)
	return uc, leadRepo, notifRepo, events
}

func TestCreateLeadSuccess(t *testing.T) {
	uc, leadRepo, notifRepo, events := newLeadUseCase()
	leadRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Return(nil)
	notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == testSystemUserID && n.EntityType == entity.EntityTypeLead &&
			n.Message == "New lead: Ann (Form: Landing)"
	})).Return(nil)
	events.On("PublishEvent", mock.Anything, mock.MatchedBy(func(e queue.Event) bool {
		return e.Type == queue.EventLeadCreated
	})).Return(nil)

	p := payloadOf("name", "Ann", "phone", "+5511999", "email", "ann@x.com", "formname", "Landing", "status", "Won")
	out, err := uc.Execute(context.Background(), p, KindLead)

	require.NoError(t, err)
	assert.Equal(t, KindLead, out.Kind)
	assert.True(t, out.NotificationSent)

	lead := out.Data.(*entity.Lead)
	assert.Equal(t, "Form: Landing", lead.Source)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.Nil(t, lead.Comment)
	assert.Equal(t, "+5511999", lead.Phone)
	leadRepo.AssertExpectations(t)
	notifRepo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateLeadDefaultSource(t *testing.T) {
	uc, leadRepo, notifRepo, _ := newLeadUseCase()
	uc.Events = nil
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Execute(context.Background(), payloadOf("name", " Ann ", "comment", "  call me\nafter 6pm  "), KindLead)

	require.NoError(t, err)
	lead := out.Data.(*entity.Lead)
	assert.Equal(t, "Ann", lead.Name)
	assert.Equal(t, "Form: Unknown", lead.Source)
	require.NotNil(t, lead.Comment)
	assert.Equal(t, "  call me\nafter 6pm  ", *lead.Comment)
}

func TestCreateQuizMergesAnswersIntoComment(t *testing.T) {
	uc, leadRepo, notifRepo, events := newLeadUseCase()
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	p := payloadOf("name", "Ann", "comment", "hello", "q_favorite_color", "blue", "q_size", "M", "formname", "Style quiz")
	out, err := uc.Execute(context.Background(), p, KindQuiz)

	require.NoError(t, err)
	assert.Equal(t, KindQuiz, out.Kind)
	lead := out.Data.(*entity.Lead)
	assert.Equal(t, "Quiz: Style quiz", lead.Source)
	require.NotNil(t, lead.Comment)
	assert.Equal(t, "hello\n\nQuiz data:\nfavorite color: blue\nsize: M", *lead.Comment)
}

func TestCreateQuizWithoutUserComment(t *testing.T) {
	uc, leadRepo, notifRepo, events := newLeadUseCase()
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.Execute(context.Background(), payloadOf("name", "Ann", "q_age", "30"), KindQuiz)

	require.NoError(t, err)
	lead := out.Data.(*entity.Lead)
	assert.Equal(t, "Quiz: Unknown", lead.Source)
	assert.Equal(t, "Quiz data:\nage: 30", *lead.Comment)
}

func TestCreateLeadMissingNameWritesNothing(t *testing.T) {
	uc, leadRepo, notifRepo, events := newLeadUseCase()

	out, err := uc.Execute(context.Background(), payloadOf("phone", "123", "name", "  "), KindLead)

	assert.Nil(t, out)
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

func TestCreateLeadStoreFailure(t *testing.T) {
	uc, leadRepo, notifRepo, _ := newLeadUseCase()
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := uc.Execute(context.Background(), payloadOf("name", "Ann"), KindLead)

	assert.True(t, IsTechnicalError(err))
	notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadSurvivesNotificationAndEventFailures(t *testing.T) {
	uc, leadRepo, notifRepo, events := newLeadUseCase()
	leadRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("notifications table missing"))
	events.On("PublishEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	out, err := uc.Execute(context.Background(), payloadOf("name", "Ann"), KindLead)

	require.NoError(t, err)
	assert.False(t, out.NotificationSent)
}
