package apperrors

import (
	"net/http"
)

// AppError 自定义错误类型
// 携带 ProblemKey 时，错误中间件会按请求语言渲染 title/detail 文案；
// Message 只作为无法本地化时的兜底文本
type AppError struct {
	Code    int
	Message string
	Problem ProblemKey
	Args    []any
	Cause   error

	hasProblem bool
}

func (e *AppError) Error() string {
	if e.hasProblem {
		return e.Problem.Slug() + ": " + e.Message
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// HasProblem 是否关联了 ProblemKey
func (e *AppError) HasProblem() bool {
	return e.hasProblem
}

// FromProblem 基于 ProblemKey 创建错误，args 用于 detail 模板的占位符
func FromProblem(p ProblemKey, args ...any) *AppError {
	return &AppError{
		Code:       p.Status(),
		Message:    p.Slug(),
		Problem:    p,
		Args:       args,
		hasProblem: true,
	}
}

// FromProblemWithCause 同 FromProblem，保留底层错误便于日志排查
func FromProblemWithCause(p ProblemKey, cause error, args ...any) *AppError {
	e := FromProblem(p, args...)
	e.Cause = cause
	return e
}

// WithCode 创建通用业务错误
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// BusinessError 封装业务逻辑错误（通用）
func BusinessError(code int, message string) *AppError {
	return WithCode(code, message)
}

// InvalidRequestError 封装参数校验错误
func InvalidRequestError(message string) *AppError {
	return WithCode(http.StatusBadRequest, message)
}

// InvalidRequestErrorDefault 默认参数校验错误
func InvalidRequestErrorDefault() *AppError {
	return FromProblem(ProblemInvalidRequest)
}

// SystemError 封装系统内部错误
func SystemError(message string) *AppError {
	return WithCode(http.StatusInternalServerError, message)
}

// SystemErrorDefault 默认系统内部错误
func SystemErrorDefault() *AppError {
	return FromProblem(ProblemInternalError)
}
