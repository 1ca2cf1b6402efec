package view

import (
	"context"
	"testing"

	apperrors "alumni-client/internal/errors"
	"alumni-client/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventService 是 EventService 接口的模拟实现
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) List(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) Get(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, input model.EventInput) (*model.Event, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, id int, input model.EventInput) (*model.Event, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventService) Join(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventService) Leave(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestEventsRefresh 测试活动列表加载
func TestEventsRefresh(t *testing.T) {
	mockSvc := new(MockEventService)
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com"})
	view := NewEventsView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("List", mock.Anything).Return([]*model.Event{
		{ID: 1, Title: "Meetup", Location: "Campus Hall"},
	}, nil)

	assert.NoError(t, view.Refresh())
	events := view.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, "Meetup", events[0].Title)
}

// TestOpenNotFound 测试详情页 404 渲染为"未找到"状态而不是错误
func TestOpenNotFound(t *testing.T) {
	mockSvc := new(MockEventService)
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com"})
	view := NewEventsView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("Get", mock.Anything, 99).
		Return(nil, apperrors.New(apperrors.ErrResourceNotFound, "event not found"))

	assert.NoError(t, view.Open(99))
	assert.True(t, view.NotFound())
	assert.Nil(t, view.Current())
	assert.Equal(t, "", view.Error())
}

// TestOpenOtherErrors 测试非 404 的加载失败仍作为错误呈现
func TestOpenOtherErrors(t *testing.T) {
	mockSvc := new(MockEventService)
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com"})
	view := NewEventsView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("Get", mock.Anything, 1).
		Return(nil, apperrors.New(apperrors.ErrNetwork, "could not reach server"))

	assert.Error(t, view.Open(1))
	assert.False(t, view.NotFound())
	assert.Equal(t, "could not reach server", view.Error())
}

// TestToggleAttendanceOptimistic 测试报名立即出现在参加者列表
func TestToggleAttendanceOptimistic(t *testing.T) {
	me := &model.User{ID: 1, Name: "Demo User", Email: "user@example.com"}
	mockSvc := new(MockEventService)
	sess := loggedInSession(t, me)
	view := NewEventsView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("List", mock.Anything).Return([]*model.Event{
		{ID: 5, Title: "Meetup", Attendees: []model.User{{ID: 9, Name: "Other"}}},
	}, nil)
	mockSvc.On("Join", mock.Anything, 5).Return(nil)

	assert.NoError(t, view.Refresh())
	assert.NoError(t, view.ToggleAttendance(5))

	event := view.Events()[0]
	assert.True(t, event.IsAttending(1))
	assert.Len(t, event.Attendees, 2)

	// 再次切换取消报名
	mockSvc.On("Leave", mock.Anything, 5).Return(nil)
	assert.NoError(t, view.ToggleAttendance(5))
	event = view.Events()[0]
	assert.False(t, event.IsAttending(1))
	assert.Len(t, event.Attendees, 1)
}

// TestToggleAttendanceRollback 测试报名失败后参加者列表恢复快照
func TestToggleAttendanceRollback(t *testing.T) {
	me := &model.User{ID: 1, Name: "Demo User", Email: "user@example.com"}
	mockSvc := new(MockEventService)
	sess := loggedInSession(t, me)
	view := NewEventsView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("List", mock.Anything).Return([]*model.Event{
		{ID: 5, Title: "Meetup", Attendees: []model.User{{ID: 9, Name: "Other"}}},
	}, nil)
	mockSvc.On("Join", mock.Anything, 5).
		Return(apperrors.New(apperrors.ErrNetwork, "could not reach server"))

	assert.NoError(t, view.Refresh())
	assert.Error(t, view.ToggleAttendance(5))

	event := view.Events()[0]
	assert.False(t, event.IsAttending(1))
	assert.Len(t, event.Attendees, 1)
	assert.Equal(t, "could not reach server", view.EntityError("event:5:join"))
}

// TestDeleteRemovesFromList 测试删除活动后从列表与详情中移除
func TestDeleteRemovesFromList(t *testing.T) {
	mockSvc := new(MockEventService)
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com"})
	view := NewEventsView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("List", mock.Anything).Return([]*model.Event{
		{ID: 1, Title: "Meetup"},
		{ID: 2, Title: "Reunion"},
	}, nil)
	mockSvc.On("Delete", mock.Anything, 1).Return(nil)

	assert.NoError(t, view.Refresh())
	assert.NoError(t, view.Delete(1))

	events := view.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, 2, events[0].ID)
}
