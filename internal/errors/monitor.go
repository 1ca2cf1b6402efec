package errors

import "sync"

// ErrorMonitor 按错误码统计客户端请求失败次数
type ErrorMonitor struct {
	errorCounts map[ErrorCode]int
	mu          sync.RWMutex
}

func NewErrorMonitor() *ErrorMonitor {
	return &ErrorMonitor{
		errorCounts: make(map[ErrorCode]int),
	}
}

func (m *ErrorMonitor) RecordError(err error) {
	if appErr, ok := err.(*AppError); ok {
		m.mu.Lock()
		m.errorCounts[appErr.Code]++
		m.mu.Unlock()
	}
}

func (m *ErrorMonitor) GetErrorCounts() map[ErrorCode]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[ErrorCode]int)
	for code, count := range m.errorCounts {
		counts[code] = count
	}
	return counts
}
