// Package interfaces 定义视图层依赖的服务契约，便于在测试中替换模拟实现
package interfaces

import (
	"context"

	"alumni-client/internal/model"
)

// AuthService 处理认证相关的后端调用
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	FetchCurrentUser(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context) error
}

// EventService 处理活动相关的后端调用
type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	Get(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, input model.EventInput) (*model.Event, error)
	Update(ctx context.Context, id int, input model.EventInput) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	Join(ctx context.Context, id int) error
	Leave(ctx context.Context, id int) error
}

// PostService 处理帖子与评论相关的后端调用
type PostService interface {
	List(ctx context.Context, page, size int) (*model.Page[model.Post], error)
	Create(ctx context.Context, input model.PostInput) (*model.Post, error)
	Update(ctx context.Context, id int, input model.PostInput) (*model.Post, error)
	Delete(ctx context.Context, id int) error
	Like(ctx context.Context, id int) error
	Unlike(ctx context.Context, id int) error
	ListComments(ctx context.Context, postID int) ([]*model.Comment, error)
	AddComment(ctx context.Context, postID int, text string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID int) error
}

// ProfileService 处理用户主页与关注关系的后端调用
type ProfileService interface {
	FetchUser(ctx context.Context, id int) (*model.User, error)
	UpdateMe(ctx context.Context, patch model.UserPatch) (*model.User, error)
	Followers(ctx context.Context, id int) ([]*model.User, error)
	Following(ctx context.Context, id int) ([]*model.User, error)
	Follow(ctx context.Context, id int) error
	Unfollow(ctx context.Context, id int) error
}

// AdminService 处理管理员操作的后端调用
type AdminService interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	AddUser(ctx context.Context, input model.NewUser) (*model.User, error)
	RemoveUser(ctx context.Context, id int) error
	ChangeUserStatus(ctx context.Context, id int, status string) (*model.User, error)
	RemoveEvent(ctx context.Context, id int) error
}

// SearchService 处理用户搜索
type SearchService interface {
	Users(ctx context.Context, query string) ([]*model.User, error)
}

// DonationService 处理捐赠流程
type DonationService interface {
	Process(ctx context.Context, req model.DonationRequest) (*model.DonationReceipt, error)
}

// CollegeService 处理院校注册
type CollegeService interface {
	Register(ctx context.Context, reg model.CollegeRegistration) (*model.CollegeConfirmation, error)
}
