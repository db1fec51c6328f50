package errorutil

import (
	"errors"
	"fmt"
)

// Error 任务错误（包含可重试标记）
type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
	cause      error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.cause
}

// Retriable 创建可重试错误（网络错误、数据库抖动等）
func Retriable(message string, cause error) *Error {
	return &Error{
		Code:       500,
		Message:    message,
		Retryable:  true,
		DevDetails: details(cause),
		cause:      cause,
	}
}

// NonRetriable 创建不可重试错误（数据格式错误、业务规则错误等）
func NonRetriable(message string, cause error) *Error {
	return &Error{
		Code:       400,
		Message:    message,
		Retryable:  false,
		DevDetails: details(cause),
		cause:      cause,
	}
}

// Wrap 包装错误，未标记的错误默认不可重试
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{
		Code:       500,
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
		cause:      err,
	}
}

// IsRetryable 判断错误链中是否存在可重试错误
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

func details(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}
