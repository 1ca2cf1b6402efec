package view

import (
	"context"
	"testing"

	"alumni-client/internal/model"
	"alumni-client/internal/session"
	"alumni-client/internal/store"

	"github.com/stretchr/testify/assert"
)

// TestGuardPublicRoutes 测试公开路由对任何会话状态都放行
func TestGuardPublicRoutes(t *testing.T) {
	sess := session.NewStore(&stubAuth{}, store.NewMemoryTokenStore())
	guard := NewGuard(sess)

	// 会话仍在加载中，公开页面无需等待
	assert.Equal(t, DecisionRender, guard.Resolve("/login").Decision)
	assert.Equal(t, DecisionRender, guard.Resolve("/college/register").Decision)
}

// TestGuardPlaceholderWhileLoading 测试会话恢复完成前受保护路由渲染占位
func TestGuardPlaceholderWhileLoading(t *testing.T) {
	sess := session.NewStore(&stubAuth{}, store.NewMemoryTokenStore())
	guard := NewGuard(sess)

	assert.Equal(t, DecisionPlaceholder, guard.Resolve("/feed").Decision)
	assert.Equal(t, DecisionPlaceholder, guard.Resolve("/admin/users").Decision)
}

// TestGuardRedirectsToLogin 测试未登录访问受保护页面跳转登录并保留原路径
func TestGuardRedirectsToLogin(t *testing.T) {
	sess := session.NewStore(&stubAuth{}, store.NewMemoryTokenStore())
	sess.Restore(context.Background()) // 无持久化令牌，落到登出状态
	guard := NewGuard(sess)

	res := guard.Resolve("/events/42")
	assert.Equal(t, DecisionRedirectLogin, res.Decision)
	assert.Equal(t, "/events/42", res.ReturnTo)
}

// TestGuardRoleGating 测试角色门控：非管理员跳首页而非登录页
func TestGuardRoleGating(t *testing.T) {
	student := &model.User{ID: 1, Email: "user@example.com", Role: model.RoleStudent}
	sess := loggedInSession(t, student)
	guard := NewGuard(sess)

	// 普通页面放行
	assert.Equal(t, DecisionRender, guard.Resolve("/feed").Decision)

	// 管理页拒绝，且两种拒绝可区分：这里绝不跳登录页
	res := guard.Resolve("/admin/users")
	assert.Equal(t, DecisionRedirectHome, res.Decision)
	assert.Equal(t, "", res.ReturnTo)
}

// TestGuardAdminAccess 测试管理员可以进入管理页
func TestGuardAdminAccess(t *testing.T) {
	admin := &model.User{ID: 2, Email: "admin@example.com", Role: model.RoleAdmin}
	sess := loggedInSession(t, admin)
	guard := NewGuard(sess)

	assert.Equal(t, DecisionRender, guard.Resolve("/admin/users").Decision)
	assert.Equal(t, DecisionRender, guard.Resolve("/admin/events").Decision)
}

// TestGuardUnknownPath 测试路由表之外的路径渲染未找到页面
func TestGuardUnknownPath(t *testing.T) {
	sess := loggedInSession(t, &model.User{ID: 1, Email: "user@example.com", Role: model.RoleStudent})
	guard := NewGuard(sess)

	assert.Equal(t, DecisionNotFound, guard.Resolve("/no/such/page").Decision)
}

// TestRouteMatch 测试路由表匹配，:段 匹配任意非空片段
func TestRouteMatch(t *testing.T) {
	route, ok := Match("/events/42")
	assert.True(t, ok)
	assert.Equal(t, "/events/:id", route.Pattern)

	route, ok = Match("/events/42/edit")
	assert.True(t, ok)
	assert.Equal(t, "/events/:id/edit", route.Pattern)

	// 静态段优先于参数段
	route, ok = Match("/events/new")
	assert.True(t, ok)
	assert.Equal(t, "/events/new", route.Pattern)

	_, ok = Match("/events/42/extra/deep")
	assert.False(t, ok)
}
