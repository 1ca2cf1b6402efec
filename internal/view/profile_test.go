package view

import (
	"context"
	"testing"

	apperrors "alumni-client/internal/errors"
	"alumni-client/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProfileService 是 ProfileService 接口的模拟实现
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) FetchUser(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProfileService) UpdateMe(ctx context.Context, patch model.UserPatch) (*model.User, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProfileService) Followers(ctx context.Context, id int) ([]*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockProfileService) Following(ctx context.Context, id int) ([]*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockProfileService) Follow(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileService) Unfollow(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestProfileLoadAggregates 测试主页聚合拉取资料与关注关系
func TestProfileLoadAggregates(t *testing.T) {
	mockSvc := new(MockProfileService)
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com"})
	view := NewProfileView(context.Background(), mockSvc, sess)
	defer view.Close()

	target := &model.User{ID: 5, Name: "Alumni Five"}
	mockSvc.On("FetchUser", mock.Anything, 5).Return(target, nil)
	mockSvc.On("Followers", mock.Anything, 5).Return([]*model.User{{ID: 1, Name: "Demo User"}}, nil)
	mockSvc.On("Following", mock.Anything, 5).Return([]*model.User{}, nil)

	assert.NoError(t, view.Load(5))
	assert.Equal(t, "Alumni Five", view.User().Name)
	assert.Len(t, view.Followers(), 1)
	assert.True(t, view.IsFollowedByMe())
	mockSvc.AssertExpectations(t)
}

// TestProfileLoadNotFound 测试资料 404 渲染为"未找到"状态
func TestProfileLoadNotFound(t *testing.T) {
	mockSvc := new(MockProfileService)
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com"})
	view := NewProfileView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("FetchUser", mock.Anything, 99).
		Return(nil, apperrors.New(apperrors.ErrResourceNotFound, "user not found"))

	assert.NoError(t, view.Load(99))
	assert.True(t, view.NotFound())
	assert.Nil(t, view.User())
	// 资料未找到时不再拉取关注列表
	mockSvc.AssertNotCalled(t, "Followers", mock.Anything, 99)
}

// TestProfileFollowerErrorDoesNotBlockPage 测试关注列表失败不拦截整页
func TestProfileFollowerErrorDoesNotBlockPage(t *testing.T) {
	mockSvc := new(MockProfileService)
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com"})
	view := NewProfileView(context.Background(), mockSvc, sess)
	defer view.Close()

	target := &model.User{ID: 5, Name: "Alumni Five"}
	mockSvc.On("FetchUser", mock.Anything, 5).Return(target, nil)
	mockSvc.On("Followers", mock.Anything, 5).
		Return(nil, apperrors.New(apperrors.ErrNetwork, "could not reach server"))
	mockSvc.On("Following", mock.Anything, 5).Return([]*model.User{}, nil)

	assert.NoError(t, view.Load(5))
	// 资料可用，错误消息保留供页面展示
	assert.Equal(t, "Alumni Five", view.User().Name)
	assert.Equal(t, "could not reach server", view.Error())
}

// TestToggleFollowOptimistic 测试关注立即出现在粉丝列表，失败时恢复
func TestToggleFollowOptimistic(t *testing.T) {
	me := &model.User{ID: 1, Name: "Demo User", Email: "user@example.com"}
	mockSvc := new(MockProfileService)
	sess := loggedInSession(t, me)
	view := NewProfileView(context.Background(), mockSvc, sess)
	defer view.Close()

	target := &model.User{ID: 5, Name: "Alumni Five"}
	mockSvc.On("FetchUser", mock.Anything, 5).Return(target, nil)
	mockSvc.On("Followers", mock.Anything, 5).Return([]*model.User{}, nil)
	mockSvc.On("Following", mock.Anything, 5).Return([]*model.User{}, nil)
	mockSvc.On("Follow", mock.Anything, 5).Return(nil)

	assert.NoError(t, view.Load(5))
	assert.False(t, view.IsFollowedByMe())

	assert.NoError(t, view.ToggleFollow())
	assert.True(t, view.IsFollowedByMe())

	// 取关失败后回到已关注状态
	mockSvc.On("Unfollow", mock.Anything, 5).
		Return(apperrors.New(apperrors.ErrNetwork, "could not reach server"))
	assert.Error(t, view.ToggleFollow())
	assert.True(t, view.IsFollowedByMe())
	assert.Equal(t, "could not reach server", view.FollowError())
}

// TestToggleFollowSelf 测试不能关注自己
func TestToggleFollowSelf(t *testing.T) {
	me := &model.User{ID: 1, Name: "Demo User", Email: "user@example.com"}
	mockSvc := new(MockProfileService)
	sess := loggedInSession(t, me)
	view := NewProfileView(context.Background(), mockSvc, sess)
	defer view.Close()

	mockSvc.On("FetchUser", mock.Anything, 1).Return(me, nil)
	mockSvc.On("Followers", mock.Anything, 1).Return([]*model.User{}, nil)
	mockSvc.On("Following", mock.Anything, 1).Return([]*model.User{}, nil)

	assert.NoError(t, view.Load(1))
	err := view.ToggleFollow()
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockSvc.AssertNotCalled(t, "Follow", mock.Anything, 1)
}

// TestSubmitProfileEdit 测试资料保存成功后同步进会话缓存
func TestSubmitProfileEdit(t *testing.T) {
	me := &model.User{ID: 1, Name: "Demo User", Email: "user@example.com"}
	mockSvc := new(MockProfileService)
	sess := loggedInSession(t, me)
	view := NewProfileView(context.Background(), mockSvc, sess)
	defer view.Close()

	newName := "Renamed User"
	patch := model.UserPatch{Name: &newName}
	updated := &model.User{ID: 1, Name: "Renamed User", Email: "user@example.com"}
	mockSvc.On("UpdateMe", mock.Anything, patch).Return(updated, nil)

	got, err := view.SubmitProfileEdit(patch)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed User", got.Name)

	// 会话中的当前用户同步更新
	assert.Equal(t, "Renamed User", sess.Snapshot().User.Name)
}

// TestSubmitProfileEditFailure 测试保存失败时不污染会话缓存
func TestSubmitProfileEditFailure(t *testing.T) {
	me := &model.User{ID: 1, Name: "Demo User", Email: "user@example.com"}
	mockSvc := new(MockProfileService)
	sess := loggedInSession(t, me)
	view := NewProfileView(context.Background(), mockSvc, sess)
	defer view.Close()

	newName := "Renamed User"
	patch := model.UserPatch{Name: &newName}
	mockSvc.On("UpdateMe", mock.Anything, patch).
		Return(nil, apperrors.New(apperrors.ErrValidation, "name too long"))

	_, err := view.SubmitProfileEdit(patch)
	assert.Error(t, err)
	assert.Equal(t, "Demo User", sess.Snapshot().User.Name)
}
