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

// EventsView 持有活动列表和详情页的界面状态。
// 报名/取消报名走乐观更新，创建与编辑走普通表单提交。
type EventsView struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	events     []*model.Event
	current    *model.Event
	loading    bool
	notFound   bool
	errMsg     string
	entityErrs map[string]string

	svc     interfaces.EventService
	session *session.Store
	runner  *optimistic.Runner
}

func NewEventsView(parent context.Context, svc interfaces.EventService, sess *session.Store) *EventsView {
	ctx, cancel := context.WithCancel(parent)
	return &EventsView{
		ctx:        ctx,
		cancel:     cancel,
		entityErrs: make(map[string]string),
		svc:        svc,
		session:    sess,
		runner:     optimistic.NewRunner(),
	}
}

func (v *EventsView) Close() {
	v.cancel()
}

func (v *EventsView) closed() bool {
	return v.ctx.Err() != nil
}

// Events 返回活动列表的副本
func (v *EventsView) Events() []*model.Event {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*model.Event, len(v.events))
	copy(out, v.events)
	return out
}

// Current 返回详情页当前展示的活动
func (v *EventsView) Current() *model.Event {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// NotFound 表示详情页应渲染"未找到"状态并提供返回列表的入口
func (v *EventsView) NotFound() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notFound
}

func (v *EventsView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *EventsView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

func (v *EventsView) EntityError(key string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.entityErrs[key]
}

func (v *EventsView) DismissEntityError(key string) {
	v.mu.Lock()
	delete(v.entityErrs, key)
	v.mu.Unlock()
}

// Refresh 重新加载活动列表
func (v *EventsView) Refresh() error {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	events, err := v.svc.List(v.ctx)
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
	v.events = events
	return nil
}

// Open 加载活动详情。404 渲染为"未找到"状态而非错误。
func (v *EventsView) Open(id int) error {
	v.mu.Lock()
	v.loading = true
	v.notFound = false
	v.errMsg = ""
	v.current = nil
	v.mu.Unlock()

	event, err := v.svc.Get(v.ctx, id)
	if v.closed() {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		if errors.IsNotFound(err) {
			v.notFound = true
			return nil
		}
		v.errMsg = errors.Message(err)
		return err
	}
	v.current = event
	return nil
}

// Create 创建活动并插入列表
func (v *EventsView) Create(input model.EventInput) (*model.Event, error) {
	event, err := v.svc.Create(v.ctx, input)
	if v.closed() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.events = append([]*model.Event{event}, v.events...)
	v.mu.Unlock()
	return event, nil
}

// Update 编辑活动并就地替换
func (v *EventsView) Update(id int, input model.EventInput) (*model.Event, error) {
	event, err := v.svc.Update(v.ctx, id, input)
	if v.closed() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	for i, e := range v.events {
		if e.ID == id {
			v.events[i] = event
			break
		}
	}
	if v.current != nil && v.current.ID == id {
		v.current = event
	}
	v.mu.Unlock()
	return event, nil
}

// Delete 删除活动
func (v *EventsView) Delete(id int) error {
	if err := v.svc.Delete(v.ctx, id); err != nil {
		return err
	}
	if v.closed() {
		return nil
	}

	v.mu.Lock()
	kept := make([]*model.Event, 0, len(v.events))
	for _, e := range v.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	v.events = kept
	if v.current != nil && v.current.ID == id {
		v.current = nil
	}
	v.mu.Unlock()
	return nil
}

// ToggleAttendance 乐观报名或取消报名：
// 先在本地出入 attendees 列表，失败时整体恢复快照。
func (v *EventsView) ToggleAttendance(eventID int) error {
	snapUser := v.session.Snapshot()
	if snapUser.User == nil {
		return errors.New(errors.ErrUnauthorized, "login required")
	}
	me := *snapUser.User

	key := fmt.Sprintf("event:%d:join", eventID)
	var wasAttending bool

	err := optimistic.Run(v.ctx, v.runner, optimistic.Command[[]model.User]{
		Key: key,
		Snapshot: func() []model.User {
			v.mu.Lock()
			defer v.mu.Unlock()
			event := v.findLocked(eventID)
			if event == nil {
				return nil
			}
			wasAttending = event.IsAttending(me.ID)
			out := make([]model.User, len(event.Attendees))
			copy(out, event.Attendees)
			return out
		},
		Apply: func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			event := v.findLocked(eventID)
			if event == nil {
				return
			}
			if wasAttending {
				kept := event.Attendees[:0]
				for _, u := range event.Attendees {
					if u.ID != me.ID {
						kept = append(kept, u)
					}
				}
				event.Attendees = kept
			} else {
				event.Attendees = append(event.Attendees, me)
			}
		},
		Do: func(ctx context.Context) error {
			if wasAttending {
				return v.svc.Leave(ctx, eventID)
			}
			return v.svc.Join(ctx, eventID)
		},
		Revert: func(snap []model.User) {
			if v.closed() {
				return
			}
			v.mu.Lock()
			defer v.mu.Unlock()
			if event := v.findLocked(eventID); event != nil {
				event.Attendees = snap
			}
		},
	})

	if err != nil && !v.closed() {
		v.mu.Lock()
		v.entityErrs[key] = errors.Message(err)
		v.mu.Unlock()
	}
	return err
}

// findLocked 在列表和当前详情中定位活动，调用方需持有锁
func (v *EventsView) findLocked(id int) *model.Event {
	if v.current != nil && v.current.ID == id {
		return v.current
	}
	for _, e := range v.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}
