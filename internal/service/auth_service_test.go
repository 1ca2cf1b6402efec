package service

import (
	"context"
	"net/http"
	"testing"

	"alumni-client/internal/errors"

	"github.com/stretchr/testify/assert"
)

// TestLoginRejectsEmptyCredentials 测试空凭证不发起请求
func TestLoginRejectsEmptyCredentials(t *testing.T) {
	called := false
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	svc := NewAuthService(client)
	_, _, err := svc.Login(context.Background(), "", "password")
	assert.Error(t, err)

	_, _, err = svc.Login(context.Background(), "user@example.com", "")
	assert.Error(t, err)
	assert.False(t, called)
}

// TestLoginMalformedResponse 测试缺少用户或令牌的响应被视为错误
func TestLoginMalformedResponse(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":""}`))
	}))

	svc := NewAuthService(client)
	_, _, err := svc.Login(context.Background(), "user@example.com", "password")
	assert.Error(t, err)
	assert.Contains(t, errors.Message(err), "malformed")
}

// TestLoginPropagatesBackendError 测试后端拒绝登录时错误原样传递
func TestLoginPropagatesBackendError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	}))

	svc := NewAuthService(client)
	_, _, err := svc.Login(context.Background(), "user@example.com", "wrong")
	assert.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
	assert.Equal(t, "invalid credentials", errors.Message(err))
}
