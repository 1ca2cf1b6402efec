package view

import (
	"alumni-client/internal/session"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// Decision 是路由守卫的裁决结果
type Decision int

const (
	// DecisionPlaceholder 会话尚未恢复完成，渲染占位内容，不跳转
	DecisionPlaceholder Decision = iota
	// DecisionRender 允许渲染目标子树
	DecisionRender
	// DecisionRedirectLogin 未登录访问受保护页面，跳转登录页
	DecisionRedirectLogin
	// DecisionRedirectHome 已登录但角色不符（非管理员访问管理页），跳转首页
	DecisionRedirectHome
	// DecisionNotFound 路径不在路由表中，渲染未找到页面
	DecisionNotFound
)

// Resolution 携带裁决结果和跳转所需的附加信息
type Resolution struct {
	Decision Decision
	// ReturnTo 在跳转登录时保留原始路径，登录成功后回跳
	ReturnTo string
}

// Guard 依据会话状态对导航请求做门控
type Guard struct {
	session *session.Store
}

func NewGuard(sess *session.Store) *Guard {
	return &Guard{session: sess}
}

// Resolve 裁决一次到 path 的导航。
// "未登录"跳登录页并保留原路径；"无权限"跳首页，绝不跳登录页，
// 两种拒绝必须可区分。
func (g *Guard) Resolve(path string) Resolution {
	route, ok := Match(path)
	if !ok {
		return Resolution{Decision: DecisionNotFound}
	}

	snap := g.session.Snapshot()

	if route.Access == AccessPublic {
		return Resolution{Decision: DecisionRender}
	}

	if snap.IsLoading {
		return Resolution{Decision: DecisionPlaceholder}
	}

	if !snap.IsAuthenticated {
		util.Logger.Debug("未登录访问受保护路由", zap.String("path", path))
		return Resolution{Decision: DecisionRedirectLogin, ReturnTo: path}
	}

	if route.Access == AccessAdmin && !snap.User.IsAdmin() {
		util.Logger.Debug("非管理员访问管理路由",
			zap.String("path", path),
			zap.Int("user_id", snap.User.ID))
		return Resolution{Decision: DecisionRedirectHome}
	}

	return Resolution{Decision: DecisionRender}
}
