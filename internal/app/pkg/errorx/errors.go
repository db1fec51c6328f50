package errorx

import (
	"errors"
	"net/http"
)

// BusinessError 业务错误，Code 与 HTTP 状态码一致
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
	cause   error
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// Unwrap 返回原始错误
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// WithDetail 追加字段级错误详情
func (e *BusinessError) WithDetail(path, info string) *BusinessError {
	e.Details = append(e.Details, ErrorDetail{Path: path, Info: info})
	return e
}

// Validation 400
func Validation(cause error) *BusinessError {
	return &BusinessError{Code: http.StatusBadRequest, Message: cause.Error(), cause: cause}
}

// Unauthorized 401
func Unauthorized(message string) *BusinessError {
	return NewBusinessError(http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(message string) *BusinessError {
	return NewBusinessError(http.StatusForbidden, message)
}

// NotFound 404
func NotFound(message string) *BusinessError {
	return NewBusinessError(http.StatusNotFound, message)
}

// Conflict 409
func Conflict(cause error) *BusinessError {
	return &BusinessError{Code: http.StatusConflict, Message: cause.Error(), cause: cause}
}

// Internal 500，message 面向调用方，cause 只用于日志
func Internal(message string, cause error) *BusinessError {
	return &BusinessError{Code: http.StatusInternalServerError, Message: message, cause: cause}
}

// From 将任意错误转换为业务错误，未识别的错误视为 500
func From(err error) *BusinessError {
	var be *BusinessError
	if errors.As(err, &be) {
		return be
	}
	return Internal("internal server error", err)
}
