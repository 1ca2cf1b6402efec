package view

import (
	"context"
	"sync"

	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/service/interfaces"
	"alumni-client/internal/session"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// AdminView 持有管理后台的界面状态：用户表格和活动管理。
// 入口由路由守卫按角色隐藏，后端拒绝时错误原样展示。
type AdminView struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	users   []*model.User
	loading bool
	errMsg  string

	svc     interfaces.AdminService
	session *session.Store
}

func NewAdminView(parent context.Context, svc interfaces.AdminService, sess *session.Store) *AdminView {
	ctx, cancel := context.WithCancel(parent)
	return &AdminView{
		ctx:     ctx,
		cancel:  cancel,
		svc:     svc,
		session: sess,
	}
}

func (v *AdminView) Close() {
	v.cancel()
}

func (v *AdminView) closed() bool {
	return v.ctx.Err() != nil
}

func (v *AdminView) Users() []*model.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*model.User, len(v.users))
	copy(out, v.users)
	return out
}

func (v *AdminView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *AdminView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Refresh 加载受管用户列表
func (v *AdminView) Refresh() error {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	users, err := v.svc.ListUsers(v.ctx)
	if v.closed() {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.errMsg = errors.Message(err)
		return err
	}
	v.users = users
	return nil
}

// AddUser 添加用户并插入表格
func (v *AdminView) AddUser(input model.NewUser) (*model.User, error) {
	user, err := v.svc.AddUser(v.ctx, input)
	if v.closed() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.users = append(v.users, user)
	v.mu.Unlock()
	util.Logger.Info("管理员添加用户", zap.Int("user_id", user.ID))
	return user, nil
}

// RemoveUser 删除用户并从表格移除
func (v *AdminView) RemoveUser(id int) error {
	if err := v.svc.RemoveUser(v.ctx, id); err != nil {
		return err
	}
	if v.closed() {
		return nil
	}

	v.mu.Lock()
	kept := make([]*model.User, 0, len(v.users))
	for _, u := range v.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	v.users = kept
	v.mu.Unlock()
	return nil
}

// ChangeStatus 切换用户状态并就地更新表格行
func (v *AdminView) ChangeStatus(id int, status string) error {
	updated, err := v.svc.ChangeUserStatus(v.ctx, id, status)
	if err != nil {
		return err
	}
	if v.closed() {
		return nil
	}

	v.mu.Lock()
	for i, u := range v.users {
		if u.ID == id {
			v.users[i] = updated
			break
		}
	}
	v.mu.Unlock()
	return nil
}

// RemoveEvent 管理员删除活动
func (v *AdminView) RemoveEvent(id int) error {
	if err := v.svc.RemoveEvent(v.ctx, id); err != nil {
		return err
	}
	util.Logger.Info("管理员删除活动", zap.Int("event_id", id))
	return nil
}
