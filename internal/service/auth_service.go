package service

import (
	"context"

	"alumni-client/internal/apiclient"
	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// AuthService 处理认证相关的接口调用
type AuthService struct {
	client *apiclient.Client
}

// NewAuthService 创建一个新的 AuthService 实例
func NewAuthService(client *apiclient.Client) *AuthService {
	return &AuthService{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Login 调用登录接口，成功时返回用户和令牌
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", errors.New(errors.ErrValidation, "email and password are required")
	}

	var resp loginResponse
	if err := s.client.PostJSON(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		util.Logger.Warn("登录失败", zap.String("email", email), zap.Error(err))
		return nil, "", err
	}
	if resp.User == nil || resp.Token == "" {
		return nil, "", errors.New(errors.ErrInternal, "malformed login response")
	}
	return resp.User, resp.Token, nil
}

// FetchCurrentUser 用已保存的令牌获取当前用户，用于启动时恢复会话
func (s *AuthService) FetchCurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.client.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout 通知后端退出登录。调用方先清除本地状态，本调用仅为尽力而为。
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Post(ctx, "/auth/logout", nil)
}
