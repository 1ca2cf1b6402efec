package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/optimistic"
	"alumni-client/internal/service/interfaces"
	"alumni-client/internal/session"
	"alumni-client/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedView 持有社交信息流的界面状态：帖子列表、分页、每条帖子的评论，
// 以及作用于单个实体的内联错误。点赞与评论走乐观更新。
type FeedView struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	posts    []*model.Post
	comments map[int][]*model.Comment
	page     int
	pageSize int
	lastPage bool
	loading  bool
	errMsg   string
	// 按 "实体:ID:动作" 记录的内联错误，可单独清除
	entityErrs map[string]string

	svc     interfaces.PostService
	session *session.Store
	runner  *optimistic.Runner
}

// NewFeedView 创建信息流视图
func NewFeedView(parent context.Context, svc interfaces.PostService, sess *session.Store, pageSize int) *FeedView {
	ctx, cancel := context.WithCancel(parent)
	return &FeedView{
		ctx:        ctx,
		cancel:     cancel,
		comments:   make(map[int][]*model.Comment),
		entityErrs: make(map[string]string),
		pageSize:   pageSize,
		svc:        svc,
		session:    sess,
		runner:     optimistic.NewRunner(),
	}
}

// Close 标记视图已卸载，迟到的响应会被丢弃
func (v *FeedView) Close() {
	v.cancel()
}

func (v *FeedView) closed() bool {
	return v.ctx.Err() != nil
}

// Posts 返回当前帖子列表的副本
func (v *FeedView) Posts() []*model.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*model.Post, len(v.posts))
	copy(out, v.posts)
	return out
}

// Comments 返回指定帖子的评论副本
func (v *FeedView) Comments(postID int) []*model.Comment {
	v.mu.Lock()
	defer v.mu.Unlock()
	src := v.comments[postID]
	out := make([]*model.Comment, len(src))
	copy(out, src)
	return out
}

// Loading 返回列表加载状态
func (v *FeedView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Error 返回页面级错误消息
func (v *FeedView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// EntityError 返回作用于单个实体动作的内联错误
func (v *FeedView) EntityError(key string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.entityErrs[key]
}

// DismissEntityError 清除内联错误
func (v *FeedView) DismissEntityError(key string) {
	v.mu.Lock()
	delete(v.entityErrs, key)
	v.mu.Unlock()
}

// Refresh 重新加载第一页
func (v *FeedView) Refresh() error {
	return v.load(0, true)
}

// LoadMore 加载下一页并追加
func (v *FeedView) LoadMore() error {
	v.mu.Lock()
	if v.lastPage {
		v.mu.Unlock()
		return nil
	}
	next := v.page + 1
	v.mu.Unlock()
	return v.load(next, false)
}

func (v *FeedView) load(page int, replace bool) error {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	result, err := v.svc.List(v.ctx, page, v.pageSize)
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

	posts := make([]*model.Post, 0, len(result.Content))
	for i := range result.Content {
		post := result.Content[i]
		posts = append(posts, &post)
	}
	if replace {
		v.posts = posts
	} else {
		v.posts = append(v.posts, posts...)
	}
	v.page = result.Number
	v.lastPage = result.Last
	return nil
}

// CreatePost 发布新帖并插入列表头部
func (v *FeedView) CreatePost(input model.PostInput) (*model.Post, error) {
	post, err := v.svc.Create(v.ctx, input)
	if v.closed() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.posts = append([]*model.Post{post}, v.posts...)
	v.mu.Unlock()
	return post, nil
}

// UpdatePost 编辑帖子并就地替换
func (v *FeedView) UpdatePost(id int, input model.PostInput) (*model.Post, error) {
	updated, err := v.svc.Update(v.ctx, id, input)
	if v.closed() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	for i, p := range v.posts {
		if p.ID == id {
			v.posts[i] = updated
			break
		}
	}
	v.mu.Unlock()
	return updated, nil
}

func likeKey(postID int) string    { return fmt.Sprintf("post:%d:like", postID) }
func commentKey(postID int) string { return fmt.Sprintf("post:%d:comment", postID) }
func deleteKey(postID int) string  { return fmt.Sprintf("post:%d:delete", postID) }

// ToggleLike 乐观切换点赞。liked 标记与计数作为一个原子快照回滚，
// 二者永远同增同减。
func (v *FeedView) ToggleLike(postID int) error {
	type likeState struct {
		liked bool
		count int
	}

	key := likeKey(postID)
	var wasLiked bool

	err := optimistic.Run(v.ctx, v.runner, optimistic.Command[likeState]{
		Key: key,
		Snapshot: func() likeState {
			v.mu.Lock()
			defer v.mu.Unlock()
			for _, p := range v.posts {
				if p.ID == postID {
					wasLiked = p.LikedByCurrentUser
					return likeState{liked: p.LikedByCurrentUser, count: p.LikesCount}
				}
			}
			return likeState{}
		},
		Apply: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for _, p := range v.posts {
				if p.ID == postID {
					if p.LikedByCurrentUser {
						p.LikedByCurrentUser = false
						p.LikesCount--
					} else {
						p.LikedByCurrentUser = true
						p.LikesCount++
					}
					return
				}
			}
		},
		Do: func(ctx context.Context) error {
			if wasLiked {
				return v.svc.Unlike(ctx, postID)
			}
			return v.svc.Like(ctx, postID)
		},
		Revert: func(snap likeState) {
			if v.closed() {
				return
			}
			v.mu.Lock()
			defer v.mu.Unlock()
			for _, p := range v.posts {
				if p.ID == postID {
					p.LikedByCurrentUser = snap.liked
					p.LikesCount = snap.count
					return
				}
			}
		},
	})

	if err != nil {
		v.setEntityError(key, err)
	}
	return err
}

// LoadComments 拉取帖子的评论
func (v *FeedView) LoadComments(postID int) error {
	comments, err := v.svc.ListComments(v.ctx, postID)
	if v.closed() {
		return nil
	}
	if err != nil {
		v.setEntityError(commentKey(postID), err)
		return err
	}

	v.mu.Lock()
	v.comments[postID] = comments
	v.mu.Unlock()
	return nil
}

// AddComment 乐观插入评论：先以临时 ID 入列，
// 成功后用服务端记录替换临时条目（替换而非追加），失败则整体回滚。
func (v *FeedView) AddComment(postID int, text string) error {
	snapUser := v.session.Snapshot()
	author := model.UserRef{}
	if snapUser.User != nil {
		author = model.UserRef{ID: snapUser.User.ID, Name: snapUser.User.Name, Role: snapUser.User.Role}
	}

	clientID := uuid.NewString()
	temp := &model.Comment{
		PostID:    postID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now(),
		ClientID:  clientID,
	}

	key := commentKey(postID)
	var confirmed *model.Comment

	err := optimistic.Run(v.ctx, v.runner, optimistic.Command[[]*model.Comment]{
		Key: key,
		Snapshot: func() []*model.Comment {
			v.mu.Lock()
			defer v.mu.Unlock()
			src := v.comments[postID]
			out := make([]*model.Comment, len(src))
			copy(out, src)
			return out
		},
		Apply: func() {
			v.mu.Lock()
			v.comments[postID] = append(v.comments[postID], temp)
			for _, p := range v.posts {
				if p.ID == postID {
					p.CommentsCount++
					break
				}
			}
			v.mu.Unlock()
		},
		Do: func(ctx context.Context) error {
			var err error
			confirmed, err = v.svc.AddComment(ctx, postID, text)
			return err
		},
		Reconcile: func() {
			if v.closed() || confirmed == nil {
				return
			}
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, c := range v.comments[postID] {
				if c.ClientID == clientID {
					v.comments[postID][i] = confirmed
					return
				}
			}
		},
		Revert: func(snap []*model.Comment) {
			if v.closed() {
				return
			}
			v.mu.Lock()
			defer v.mu.Unlock()
			v.comments[postID] = snap
			for _, p := range v.posts {
				if p.ID == postID {
					p.CommentsCount--
					return
				}
			}
		},
	})

	if err != nil {
		v.setEntityError(key, err)
	}
	return err
}

// DeleteComment 乐观删除评论
func (v *FeedView) DeleteComment(postID, commentID int) error {
	key := fmt.Sprintf("comment:%d:delete", commentID)
	removed := false

	err := optimistic.Run(v.ctx, v.runner, optimistic.Command[[]*model.Comment]{
		Key: key,
		Snapshot: func() []*model.Comment {
			v.mu.Lock()
			defer v.mu.Unlock()
			src := v.comments[postID]
			out := make([]*model.Comment, len(src))
			copy(out, src)
			return out
		},
		Apply: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			src := v.comments[postID]
			kept := src[:0]
			for _, c := range src {
				if c.ID != commentID {
					kept = append(kept, c)
				}
			}
			// 本地列表里没有这条评论时计数保持不变
			removed = len(kept) != len(src)
			v.comments[postID] = kept
			if !removed {
				return
			}
			for _, p := range v.posts {
				if p.ID == postID {
					p.CommentsCount--
					return
				}
			}
		},
		Do: func(ctx context.Context) error {
			return v.svc.DeleteComment(ctx, commentID)
		},
		Revert: func(snap []*model.Comment) {
			if v.closed() {
				return
			}
			v.mu.Lock()
			defer v.mu.Unlock()
			v.comments[postID] = snap
			if !removed {
				return
			}
			for _, p := range v.posts {
				if p.ID == postID {
					p.CommentsCount++
					return
				}
			}
		},
	})

	if err != nil {
		v.setEntityError(key, err)
	}
	return err
}

// DeletePost 删除帖子。同一帖子的点赞或评论尚在途时拒绝执行，
// 避免与未完成的乐观变更交错。
func (v *FeedView) DeletePost(postID int) error {
	if v.runner.Busy(likeKey(postID)) || v.runner.Busy(commentKey(postID)) {
		err := errors.New(errors.ErrResourceConflict, "post has a pending action, try again")
		v.setEntityError(deleteKey(postID), err)
		return err
	}

	err := optimistic.Run(v.ctx, v.runner, optimistic.Command[[]*model.Post]{
		Key: deleteKey(postID),
		Snapshot: func() []*model.Post {
			v.mu.Lock()
			defer v.mu.Unlock()
			out := make([]*model.Post, len(v.posts))
			copy(out, v.posts)
			return out
		},
		Apply: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			kept := v.posts[:0]
			for _, p := range v.posts {
				if p.ID != postID {
					kept = append(kept, p)
				}
			}
			v.posts = kept
		},
		Do: func(ctx context.Context) error {
			return v.svc.Delete(ctx, postID)
		},
		Revert: func(snap []*model.Post) {
			if v.closed() {
				return
			}
			v.mu.Lock()
			v.posts = snap
			v.mu.Unlock()
		},
	})

	if err != nil {
		v.setEntityError(deleteKey(postID), err)
	}
	return err
}

func (v *FeedView) setEntityError(key string, err error) {
	if v.closed() {
		return
	}
	v.mu.Lock()
	v.entityErrs[key] = errors.Message(err)
	v.mu.Unlock()
	util.Logger.Debug("实体操作失败", zap.String("key", key), zap.Error(err))
}
