package session

import (
	"context"
	"sync"
	"time"

	"alumni-client/internal/model"
	"alumni-client/internal/service/interfaces"
	"alumni-client/internal/store"
	"alumni-client/internal/util"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
)

// Snapshot 是会话状态的不可变快照，供所有读取方使用
type Snapshot struct {
	User            *model.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// Listener 在会话状态变化后被调用
type Listener func(Snapshot)

// Store 是"谁在登录"的唯一事实来源。
// 状态只能通过 Restore、Login、Logout、UpdateCurrentUser 四个操作变更，
// 视图层只读取快照并调用这些操作。
type Store struct {
	mu            sync.RWMutex
	user          *model.User
	token         string
	authenticated bool
	loading       bool

	auth      interfaces.AuthService
	tokens    store.TokenStore
	listeners []Listener
}

// NewStore 创建会话存储，初始处于加载中状态，
// 依赖会话的界面在 Restore 完成前渲染占位内容。
func NewStore(auth interfaces.AuthService, tokens store.TokenStore) *Store {
	return &Store{
		auth:    auth,
		tokens:  tokens,
		loading: true,
	}
}

// Snapshot 返回当前会话状态的副本
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Token:           s.token,
		IsAuthenticated: s.authenticated,
		IsLoading:       s.loading,
	}
	if s.user != nil {
		userCopy := *s.user
		snap.User = &userCopy
	}
	return snap
}

// Subscribe 注册状态变化监听器
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Restore 在启动时尝试用持久化令牌恢复会话。
// 任何失败（网络、401、令牌过期）都会落到完全登出的状态，
// 绝不暴露半恢复的会话。
func (s *Store) Restore(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		util.Logger.Warn("读取持久化令牌失败", zap.Error(err))
		s.clear()
		return
	}
	if token == "" {
		util.Logger.Debug("未找到持久化令牌")
		s.clear()
		return
	}

	// 本地先检查令牌是否已过期，省掉一次必然失败的网络往返
	if tokenExpired(token) {
		util.Logger.Info("持久化令牌已过期")
		_ = s.tokens.Clear()
		s.clear()
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.auth.FetchCurrentUser(ctx)
	if err != nil {
		util.Logger.Warn("令牌校验失败", zap.Error(err))
		_ = s.tokens.Clear()
		s.clear()
		return
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	util.Logger.Info("会话恢复成功", zap.Int("user_id", user.ID))
}

// Login 登录并持久化令牌。失败时清空状态并把错误交还调用方处理。
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.clear()
		return nil, err
	}

	if err := s.tokens.Save(token); err != nil {
		util.Logger.Error("持久化令牌失败", zap.Error(err))
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.authenticated = true
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	util.Logger.Info("登录成功", zap.Int("user_id", user.ID))
	return user, nil
}

// Logout 同步清除本地状态，然后尽力通知后端，
// 服务端调用失败不影响本地登出。
func (s *Store) Logout(ctx context.Context) {
	_ = s.tokens.Clear()
	s.clear()

	notifyCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.auth.Logout(notifyCtx); err != nil {
		util.Logger.Debug("服务端登出通知失败", zap.Error(err))
	}
}

// UpdateCurrentUser 把已在服务端生效的资料变更浅合并进缓存的用户对象。
// 本函数不发起网络请求，也不会失败；未登录时为空操作。
func (s *Store) UpdateCurrentUser(patch model.UserPatch) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	patch.ApplyTo(s.user)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// HandleUnauthorized 是 401 响应的处理入口：清除令牌并标记登出，
// 页面级跳转由路由守卫在下一次导航时完成。
func (s *Store) HandleUnauthorized() {
	_ = s.tokens.Clear()
	s.clear()
}

func (s *Store) clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// tokenExpired 只解析 exp 声明判断过期，签名校验是后端的职责
func tokenExpired(tokenString string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		// 解析不了的令牌交给后端判断
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}
