package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 定义错误码类型
type ErrorCode int

// 定义系统级错误码 (1000-1999)
const (
	ErrInternal ErrorCode = 1000 + iota
	ErrNetwork
	ErrTimeout
)

// 定义认证相关错误码 (2000-2999)
const (
	ErrUnauthorized ErrorCode = 2000 + iota
	ErrForbidden
	ErrInvalidToken
	ErrTokenExpired
	ErrInvalidCredentials
)

// 定义请求相关错误码 (3000-3999)
const (
	ErrBadRequest ErrorCode = 3000 + iota
	ErrValidation
	ErrResourceNotFound
	ErrResourceConflict
)

// Kind 是调用方用于分支处理的错误类别
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuth
	KindForbidden
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// AppError 定义应用错误结构。Payload 保留后端返回的结构化错误体，
// 供表单级错误展示使用。
type AppError struct {
	Code    ErrorCode
	Message string
	Payload map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind 返回错误码对应的类别
func (e *AppError) Kind() Kind {
	switch {
	case e.Code == ErrNetwork || e.Code == ErrTimeout:
		return KindNetwork
	case e.Code == ErrForbidden:
		return KindForbidden
	case e.Code >= 2000 && e.Code < 3000:
		return KindAuth
	case e.Code == ErrValidation || e.Code == ErrBadRequest:
		return KindValidation
	case e.Code == ErrResourceNotFound:
		return KindNotFound
	case e.Code == ErrResourceConflict:
		return KindConflict
	}
	return KindUnknown
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HTTP 状态码与错误码映射（响应 → 客户端错误码）
var statusCodeMap = map[int]ErrorCode{
	http.StatusBadRequest:          ErrValidation,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrResourceNotFound,
	http.StatusConflict:            ErrResourceConflict,
	http.StatusRequestTimeout:      ErrTimeout,
	http.StatusInternalServerError: ErrInternal,
}

// FromStatus 根据 HTTP 状态码创建应用错误
func FromStatus(status int, message string) *AppError {
	code, ok := statusCodeMap[status]
	if !ok {
		if status >= 400 && status < 500 {
			code = ErrBadRequest
		} else {
			code = ErrInternal
		}
	}
	return New(code, message)
}

// KindOf 返回任意错误的类别，非 AppError 一律归为 unknown
func KindOf(err error) Kind {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Kind()
	}
	return KindUnknown
}

// IsUnauthorized 判断是否为认证失败错误
func IsUnauthorized(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrUnauthorized || appErr.Code == ErrInvalidToken || appErr.Code == ErrTokenExpired
	}
	return false
}

// IsNotFound 判断是否为资源不存在错误
func IsNotFound(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrResourceNotFound
	}
	return false
}

// Message 提取可展示的错误消息
func Message(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr.Message
	}
	return err.Error()
}
