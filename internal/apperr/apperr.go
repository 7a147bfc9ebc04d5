package apperr

import (
	"errors"
	"net/http"
)

// Kind 对应认证内核的错误分类，HTTP 层映射为状态码
type Kind int

const (
	KindUnauthenticated Kind = iota + 1
	KindForbidden
	KindConflict
	KindNotFound
	KindInvalidResetToken
	KindBadRequest
	KindInternal
)

// Error 统一错误对象：分类 + 对外 msg + 内部原因
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the taxonomy onto transport status codes.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidResetToken, KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Msg: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Msg: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Msg: msg} }
func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Msg: msg} }
func BadRequest(msg string) *Error      { return &Error{Kind: KindBadRequest, Msg: msg} }

// InvalidResetToken 重置令牌无效或已过期
func InvalidResetToken(msg string) *Error { return &Error{Kind: KindInvalidResetToken, Msg: msg} }

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
