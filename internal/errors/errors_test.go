package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFromStatus 测试 HTTP 状态码到客户端错误码的映射
func TestFromStatus(t *testing.T) {
	assert.Equal(t, ErrValidation, FromStatus(http.StatusBadRequest, "").Code)
	assert.Equal(t, ErrUnauthorized, FromStatus(http.StatusUnauthorized, "").Code)
	assert.Equal(t, ErrForbidden, FromStatus(http.StatusForbidden, "").Code)
	assert.Equal(t, ErrResourceNotFound, FromStatus(http.StatusNotFound, "").Code)
	assert.Equal(t, ErrResourceConflict, FromStatus(http.StatusConflict, "").Code)

	// 未映射的状态码按类别兜底
	assert.Equal(t, ErrBadRequest, FromStatus(http.StatusTeapot, "").Code)
	assert.Equal(t, ErrInternal, FromStatus(http.StatusBadGateway, "").Code)
}

// TestKind 测试错误类别划分
func TestKind(t *testing.T) {
	assert.Equal(t, KindNetwork, New(ErrNetwork, "").Kind())
	assert.Equal(t, KindNetwork, New(ErrTimeout, "").Kind())
	assert.Equal(t, KindAuth, New(ErrUnauthorized, "").Kind())
	assert.Equal(t, KindAuth, New(ErrTokenExpired, "").Kind())
	assert.Equal(t, KindForbidden, New(ErrForbidden, "").Kind())
	assert.Equal(t, KindValidation, New(ErrValidation, "").Kind())
	assert.Equal(t, KindNotFound, New(ErrResourceNotFound, "").Kind())
	assert.Equal(t, KindConflict, New(ErrResourceConflict, "").Kind())
	assert.Equal(t, KindUnknown, New(ErrInternal, "").Kind())
}

// TestMessage 测试可展示消息的提取
func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "not found", Message(New(ErrResourceNotFound, "not found")))
}

// TestIsHelpers 测试错误判定辅助函数
func TestIsHelpers(t *testing.T) {
	assert.True(t, IsUnauthorized(New(ErrUnauthorized, "")))
	assert.True(t, IsUnauthorized(New(ErrTokenExpired, "")))
	assert.False(t, IsUnauthorized(New(ErrForbidden, "")))

	assert.True(t, IsNotFound(New(ErrResourceNotFound, "")))
	assert.False(t, IsNotFound(New(ErrValidation, "")))
}

// TestErrorMonitor 测试错误计数统计
func TestErrorMonitor(t *testing.T) {
	monitor := NewErrorMonitor()
	monitor.RecordError(New(ErrNetwork, ""))
	monitor.RecordError(New(ErrNetwork, ""))
	monitor.RecordError(New(ErrUnauthorized, ""))

	counts := monitor.GetErrorCounts()
	assert.Equal(t, 2, counts[ErrNetwork])
	assert.Equal(t, 1, counts[ErrUnauthorized])
}
