package view

import (
	"context"
	"fmt"
	"sync"

	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/optimistic"
	"alumni-client/internal/service/interfaces"
	"alumni-client/internal/session"
)

// ProfileView 聚合一个用户主页需要的多个实体：
// 资料、粉丝列表、关注列表。关注/取关走乐观更新。
type ProfileView struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	user      *model.User
	followers []*model.User
	following []*model.User
	loading   bool
	notFound  bool
	errMsg    string
	followErr string

	svc     interfaces.ProfileService
	session *session.Store
	runner  *optimistic.Runner
}

func NewProfileView(parent context.Context, svc interfaces.ProfileService, sess *session.Store) *ProfileView {
	ctx, cancel := context.WithCancel(parent)
	return &ProfileView{
		ctx:     ctx,
		cancel:  cancel,
		svc:     svc,
		session: sess,
		runner:  optimistic.NewRunner(),
	}
}

func (v *ProfileView) Close() {
	v.cancel()
}

func (v *ProfileView) closed() bool {
	return v.ctx.Err() != nil
}

func (v *ProfileView) User() *model.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.user
}

func (v *ProfileView) Followers() []*model.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*model.User, len(v.followers))
	copy(out, v.followers)
	return out
}

func (v *ProfileView) Following() []*model.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*model.User, len(v.following))
	copy(out, v.following)
	return out
}

func (v *ProfileView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *ProfileView) NotFound() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notFound
}

func (v *ProfileView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

func (v *ProfileView) FollowError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.followErr
}

// IsFollowedByMe 判断当前登录用户是否已关注该主页
func (v *ProfileView) IsFollowedByMe() bool {
	snap := v.session.Snapshot()
	if snap.User == nil {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, u := range v.followers {
		if u.ID == snap.User.ID {
			return true
		}
	}
	return false
}

// Load 聚合拉取主页的三类数据。资料 404 渲染为"未找到"，
// 关注列表失败不拦截整页，只记录页面级错误。
func (v *ProfileView) Load(userID int) error {
	v.mu.Lock()
	v.loading = true
	v.notFound = false
	v.errMsg = ""
	v.user = nil
	v.followers = nil
	v.following = nil
	v.mu.Unlock()

	user, err := v.svc.FetchUser(v.ctx, userID)
	if v.closed() {
		return nil
	}
	if err != nil {
		v.mu.Lock()
		v.loading = false
		if errors.IsNotFound(err) {
			v.notFound = true
			v.mu.Unlock()
			return nil
		}
		v.errMsg = errors.Message(err)
		v.mu.Unlock()
		return err
	}

	followers, ferr := v.svc.Followers(v.ctx, userID)
	following, gerr := v.svc.Following(v.ctx, userID)
	if v.closed() {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	v.user = user
	v.followers = followers
	v.following = following
	if ferr != nil {
		v.errMsg = errors.Message(ferr)
	} else if gerr != nil {
		v.errMsg = errors.Message(gerr)
	}
	return nil
}

// ToggleFollow 乐观关注/取关：本地先出入粉丝列表，失败恢复快照
func (v *ProfileView) ToggleFollow() error {
	snap := v.session.Snapshot()
	if snap.User == nil {
		return errors.New(errors.ErrUnauthorized, "login required")
	}
	me := snap.User

	v.mu.Lock()
	if v.user == nil {
		v.mu.Unlock()
		return errors.New(errors.ErrValidation, "profile not loaded")
	}
	targetID := v.user.ID
	v.mu.Unlock()

	if targetID == me.ID {
		return errors.New(errors.ErrValidation, "cannot follow yourself")
	}

	wasFollowing := v.IsFollowedByMe()
	key := fmt.Sprintf("user:%d:follow", targetID)

	err := optimistic.Run(v.ctx, v.runner, optimistic.Command[[]*model.User]{
		Key: key,
		Snapshot: func() []*model.User {
			v.mu.Lock()
			defer v.mu.Unlock()
			out := make([]*model.User, len(v.followers))
			copy(out, v.followers)
			return out
		},
		Apply: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if wasFollowing {
				kept := v.followers[:0]
				for _, u := range v.followers {
					if u.ID != me.ID {
						kept = append(kept, u)
					}
				}
				v.followers = kept
			} else {
				v.followers = append(v.followers, me)
			}
		},
		Do: func(ctx context.Context) error {
			if wasFollowing {
				return v.svc.Unfollow(ctx, targetID)
			}
			return v.svc.Follow(ctx, targetID)
		},
		Revert: func(prev []*model.User) {
			if v.closed() {
				return
			}
			v.mu.Lock()
			v.followers = prev
			v.mu.Unlock()
		},
	})

	if err != nil && !v.closed() {
		v.mu.Lock()
		v.followErr = errors.Message(err)
		v.mu.Unlock()
	}
	return err
}

// SubmitProfileEdit 保存当前用户的资料修改：
// 先等服务端确认成功，再把变更合并进会话缓存。
func (v *ProfileView) SubmitProfileEdit(patch model.UserPatch) (*model.User, error) {
	updated, err := v.svc.UpdateMe(v.ctx, patch)
	if v.closed() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// 服务端已生效，合并进会话；本地合并不会失败
	v.session.UpdateCurrentUser(patch)

	v.mu.Lock()
	if v.user != nil && v.user.ID == updated.ID {
		v.user = updated
	}
	v.mu.Unlock()
	return updated, nil
}
