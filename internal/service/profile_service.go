package service

import (
	"context"
	"fmt"

	"alumni-client/internal/apiclient"
	"alumni-client/internal/errors"
	"alumni-client/internal/model"
)

// ProfileService 处理用户主页与关注关系的接口调用
type ProfileService struct {
	client *apiclient.Client
}

// NewProfileService 创建一个新的 ProfileService 实例
func NewProfileService(client *apiclient.Client) *ProfileService {
	return &ProfileService{client: client}
}

// FetchUser 获取指定用户的主页信息
func (s *ProfileService) FetchUser(ctx context.Context, id int) (*model.User, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid user id")
	}
	var user model.User
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe 更新当前用户资料，返回服务端确认后的用户对象
func (s *ProfileService) UpdateMe(ctx context.Context, patch model.UserPatch) (*model.User, error) {
	var user model.User
	if err := s.client.PutJSON(ctx, "/users/me", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Followers 获取粉丝列表
func (s *ProfileService) Followers(ctx context.Context, id int) ([]*model.User, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid user id")
	}
	var users []*model.User
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d/followers", id), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Following 获取关注列表
func (s *ProfileService) Following(ctx context.Context, id int) ([]*model.User, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid user id")
	}
	var users []*model.User
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d/following", id), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Follow 关注用户。后端未必去重，重复调用会产生重复效果。
func (s *ProfileService) Follow(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid user id")
	}
	return s.client.Post(ctx, fmt.Sprintf("/users/%d/follow", id), nil)
}

// Unfollow 取消关注
func (s *ProfileService) Unfollow(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid user id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/users/%d/follow", id))
}
