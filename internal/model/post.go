package model

import "time"

// Post 结构体表示帖子模型
type Post struct {
	ID                 int       `json:"id"`
	Content            string    `json:"content"`
	ImageURL           string    `json:"imageUrl,omitempty"`
	Author             UserRef   `json:"author"`
	CreatedAt          time.Time `json:"createdAt"`
	LikesCount         int       `json:"likesCount"`
	LikedByCurrentUser bool      `json:"likedByCurrentUser"`
	CommentsCount      int       `json:"commentsCount"`
}

// Comment 结构体表示评论模型。ClientID 仅在乐观插入期间存在，
// 与服务端确认的记录对账后被清空。
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"postId"`
	Author    UserRef   `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	ClientID  string    `json:"-"`
}

// PostInput 是发帖或编辑帖子的表单数据
type PostInput struct {
	Content   string `validate:"required"`
	ImagePath string // 本地图片文件路径，可选
}

// Page 表示后端的分页响应
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	Last          bool `json:"last"`
}
