package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"alumni-client/internal/apiclient"
	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// PostService 处理帖子、点赞与评论相关的接口调用
type PostService struct {
	client *apiclient.Client
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(client *apiclient.Client) *PostService {
	return &PostService{client: client}
}

// List 按页获取帖子，按创建时间倒序
func (s *PostService) List(ctx context.Context, page, size int) (*model.Page[model.Post], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sort", "createdAt,desc")

	var result model.Page[model.Post]
	if err := s.client.Get(ctx, "/posts", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create 发布帖子，content 作为独立表单部分提交
func (s *PostService) Create(ctx context.Context, input model.PostInput) (*model.Post, error) {
	form, err := postForm(input)
	if err != nil {
		return nil, err
	}

	var post model.Post
	if err := s.client.PostForm(ctx, "/posts", form, &post); err != nil {
		util.Logger.Warn("发帖失败", zap.Error(err))
		return nil, err
	}
	return &post, nil
}

// Update 编辑帖子，表单结构与创建一致
func (s *PostService) Update(ctx context.Context, id int, input model.PostInput) (*model.Post, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid post id")
	}
	form, err := postForm(input)
	if err != nil {
		return nil, err
	}

	var post model.Post
	if err := s.client.PutForm(ctx, fmt.Sprintf("/posts/%d", id), form, &post); err != nil {
		util.Logger.Warn("编辑帖子失败", zap.Int("post_id", id), zap.Error(err))
		return nil, err
	}
	return &post, nil
}

// Delete 删除帖子
func (s *PostService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid post id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/posts/%d", id))
}

// Like 点赞。后端未必去重，重复调用会产生重复效果。
func (s *PostService) Like(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid post id")
	}
	return s.client.Post(ctx, fmt.Sprintf("/posts/%d/like", id), nil)
}

// Unlike 取消点赞
func (s *PostService) Unlike(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid post id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/posts/%d/like", id))
}

// ListComments 获取帖子的评论列表
func (s *PostService) ListComments(ctx context.Context, postID int) ([]*model.Comment, error) {
	if postID <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid post id")
	}
	var comments []*model.Comment
	if err := s.client.Get(ctx, fmt.Sprintf("/posts/%d/comments", postID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment 提交评论，返回服务端确认的记录
func (s *PostService) AddComment(ctx context.Context, postID int, text string) (*model.Comment, error) {
	if postID <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid post id")
	}
	if text == "" {
		return nil, errors.New(errors.ErrValidation, "comment text is required")
	}

	var comment model.Comment
	body := map[string]string{"text": text}
	if err := s.client.PostJSON(ctx, fmt.Sprintf("/posts/%d/comments", postID), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment 删除评论
func (s *PostService) DeleteComment(ctx context.Context, commentID int) error {
	if commentID <= 0 {
		return errors.New(errors.ErrValidation, "invalid comment id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/comments/%d", commentID))
}

func postForm(input model.PostInput) (*apiclient.Form, error) {
	if err := util.Validate.Struct(input); err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "post content is required", err)
	}
	form := apiclient.NewForm().AddField("content", input.Content)
	if err := form.AddFileFromPath("imageFile", input.ImagePath); err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "cannot read post image", err)
	}
	return form, nil
}
