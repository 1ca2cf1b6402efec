package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"alumni-client/internal/apiclient"
	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// EventService 处理活动相关的接口调用
type EventService struct {
	client *apiclient.Client
}

// NewEventService 创建一个新的 EventService 实例
func NewEventService(client *apiclient.Client) *EventService {
	return &EventService{client: client}
}

// List 获取活动列表
func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event
	if err := s.client.Get(ctx, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get 获取单个活动
func (s *EventService) Get(ctx context.Context, id int) (*model.Event, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid event id")
	}
	var event model.Event
	if err := s.client.Get(ctx, fmt.Sprintf("/events/%d", id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create 创建活动。每个字段作为独立的表单部分提交，
// 图片存在时作为可选的二进制部分。
func (s *EventService) Create(ctx context.Context, input model.EventInput) (*model.Event, error) {
	form, err := eventForm(input)
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := s.client.PostForm(ctx, "/events", form, &event); err != nil {
		util.Logger.Warn("创建活动失败", zap.String("title", input.Title), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// Update 更新活动，表单结构与创建一致
func (s *EventService) Update(ctx context.Context, id int, input model.EventInput) (*model.Event, error) {
	if id <= 0 {
		return nil, errors.New(errors.ErrValidation, "invalid event id")
	}
	form, err := eventForm(input)
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := s.client.PutForm(ctx, fmt.Sprintf("/events/%d", id), form, &event); err != nil {
		util.Logger.Warn("更新活动失败", zap.Int("event_id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// Delete 删除活动
func (s *EventService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid event id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/events/%d", id))
}

// Join 报名参加活动。后端未必去重，重复调用会产生重复效果。
func (s *EventService) Join(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid event id")
	}
	return s.client.Post(ctx, fmt.Sprintf("/events/%d/join", id), nil)
}

// Leave 取消报名
func (s *EventService) Leave(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New(errors.ErrValidation, "invalid event id")
	}
	return s.client.Delete(ctx, fmt.Sprintf("/events/%d/join", id))
}

// eventForm 校验输入并构造多部分表单。
// Date 字段来自 "YYYY-MM-DDTHH:MM" 输入，拆分为独立的 date 和 time 部分。
func eventForm(input model.EventInput) (*apiclient.Form, error) {
	if err := util.Validate.Struct(input); err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "invalid event data", err)
	}

	datePart, timePart := splitDateTime(input.Date)
	if datePart == "" || timePart == "" {
		return nil, errors.New(errors.ErrValidation, "event date must be in YYYY-MM-DDTHH:MM format")
	}

	form := apiclient.NewForm().
		AddField("title", input.Title).
		AddField("description", input.Description).
		AddField("date", datePart).
		AddField("time", timePart).
		AddField("location", input.Location)

	if input.CollegeID > 0 {
		form.AddField("collegeId", strconv.Itoa(input.CollegeID))
	}
	if err := form.AddFileFromPath("imageFile", input.ImagePath); err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "cannot read event image", err)
	}
	return form, nil
}

func splitDateTime(value string) (string, string) {
	parts := strings.SplitN(value, "T", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
