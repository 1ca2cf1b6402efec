package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alumni-client/internal/apiclient"
	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/store"

	"github.com/stretchr/testify/assert"
)

func testClient(t *testing.T, handler http.Handler) (*apiclient.Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return apiclient.New(ts.URL, 5*time.Second, store.NewMemoryTokenStore()), ts
}

// futureDate 返回一年后的 datetime-local 日期及其拆分后的两个部分
func futureDate() (full, datePart, timePart string) {
	datePart = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	return datePart + "T10:00", datePart, "10:00"
}

// TestCreateEventMultipartContract 测试创建活动的表单契约：
// 每个字段独立成部分，日期时间拆分，未选图片时不出现文件部分
func TestCreateEventMultipartContract(t *testing.T) {
	var fields map[string][]string
	var fileKeys []string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		fields = r.MultipartForm.Value
		for key := range r.MultipartForm.File {
			fileKeys = append(fileKeys, key)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"title":"Meetup"}`))
	}))

	full, datePart, timePart := futureDate()
	svc := NewEventService(client)
	event, err := svc.Create(context.Background(), model.EventInput{
		Title:       "Meetup",
		Description: "Annual alumni meetup",
		Date:        full,
		Location:    "Campus Hall",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, event.ID)
	assert.Equal(t, []string{"Meetup"}, fields["title"])
	assert.Equal(t, []string{"Annual alumni meetup"}, fields["description"])
	assert.Equal(t, []string{datePart}, fields["date"])
	assert.Equal(t, []string{timePart}, fields["time"])
	assert.Equal(t, []string{"Campus Hall"}, fields["location"])
	// 未指定院校和图片时这两个部分都不出现
	assert.NotContains(t, fields, "collegeId")
	assert.Empty(t, fileKeys)
}

// TestCreateEventValidation 测试缺失必填字段在发起请求前被拦截
func TestCreateEventValidation(t *testing.T) {
	called := false
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	svc := NewEventService(client)
	_, err := svc.Create(context.Background(), model.EventInput{Title: "Meetup"})

	assert.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	assert.False(t, called)
}

// TestCreateEventRejectsBadDate 测试不符合格式的日期被拒绝
func TestCreateEventRejectsBadDate(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	svc := NewEventService(client)
	_, err := svc.Create(context.Background(), model.EventInput{
		Title:       "Meetup",
		Description: "desc",
		Date:        "2025-06-01", // 缺时间部分
		Location:    "Campus Hall",
	})

	assert.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
}

// TestCreateEventRejectsPastDate 测试过去的日期在发起请求前被拦截
func TestCreateEventRejectsPastDate(t *testing.T) {
	called := false
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	past := time.Now().AddDate(-1, 0, 0).Format("2006-01-02") + "T10:00"
	svc := NewEventService(client)
	_, err := svc.Create(context.Background(), model.EventInput{
		Title:       "Meetup",
		Description: "desc",
		Date:        past,
		Location:    "Campus Hall",
	})

	assert.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	assert.False(t, called)
}

// TestGetEventInvalidID 测试非法 ID 在客户端直接拒绝
func TestGetEventInvalidID(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	svc := NewEventService(client)
	_, err := svc.Get(context.Background(), 0)
	assert.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
}

// TestJoinLeavePaths 测试报名与取消对应的请求方法和路径
func TestJoinLeavePaths(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.WriteHeader(http.StatusNoContent)
	}))

	svc := NewEventService(client)
	assert.NoError(t, svc.Join(context.Background(), 5))
	assert.NoError(t, svc.Leave(context.Background(), 5))

	assert.Equal(t, []call{
		{http.MethodPost, "/events/5/join"},
		{http.MethodDelete, "/events/5/join"},
	}, calls)
}
