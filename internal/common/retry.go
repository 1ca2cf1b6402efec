package common

import (
	"time"

	"alumni-client/internal/errors"
)

// IsTemporary 判断是否为临时性错误
func IsTemporary(err error) bool {
	if temp, ok := err.(interface{ Temporary() bool }); ok {
		return temp.Temporary()
	}
	return false
}

// IsRetryable 判断是否可重试。只有传输层失败可重试，
// 后端明确拒绝的请求（4xx）重试没有意义。
func IsRetryable(err error) bool {
	if IsTemporary(err) {
		return true
	}
	kind := errors.KindOf(err)
	return kind == errors.KindNetwork
}

// WithRetry 通用重试机制。仅用于幂等的读取操作，
// 由调用方显式启用，客户端从不自动重试。
func WithRetry(operation func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = operation(); err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return err
}
