package service

import (
	"context"
	"fmt"

	"alumni-client/internal/apiclient"
	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// AdminService 处理管理员操作的接口调用。
// 调用前由视图层按角色隐藏入口，这里不再重复判断角色，
// 后端拒绝时把结构化错误原样上抛。
type AdminService struct {
	client *apiclient.Client
}

// NewAdminService 创建一个新的 AdminService 实例
func NewAdminService(client *apiclient.Client) *AdminService {
	return &AdminService{client: client}
}

// ListUsers 获取受管用户列表
func (s *AdminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := s.client.Get(ctx, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddUser 添加用户
func (s *AdminService) AddUser(ctx context.Context, input model.NewUser) (*model.User, error) {
	if err := util.Validate.Struct(input); err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "invalid user data", err)
	}

	var user model.User
	if err := s.client.PostJSON(ctx, "/admin/users", input, &user); err != nil {
		util.Logger.Warn("添加用户失败", zap.String("email", input.Email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// RemoveUser 删除用户
func (s *AdminService) RemoveUser(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid user id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// ChangeUserStatus 修改用户状态（active/inactive）
func (s *AdminService) ChangeUserStatus(ctx context.Context, id int, status string) (*model.User, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid user id")
	}
	if status != model.StatusActive && status != model.StatusInactive {
		return nil, errors.New(errors.ErrValidation, "status must be active or inactive")
	}

	var user model.User
	body := map[string]string{"status": status}
	if err := s.client.PatchJSON(ctx, fmt.Sprintf("/admin/users/%d/status", id), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RemoveEvent 管理员删除活动
func (s *AdminService) RemoveEvent(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid event id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/admin/events/%d", id))
}
