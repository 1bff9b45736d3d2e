package imagetoimage

import (
	"fmt"
	"net/http"
)

// ErrorKind - 실패 분류 (HTTP 상태 매핑의 기준)
type ErrorKind string

const (
	ErrInputValidation   ErrorKind = "input_validation"
	ErrConfiguration     ErrorKind = "configuration"
	ErrUpstreamAuth      ErrorKind = "upstream_auth"
	ErrUpstreamRateLimit ErrorKind = "upstream_rate_limit"
	ErrUpstreamRequest   ErrorKind = "upstream_request"
	ErrUpstreamServer    ErrorKind = "upstream_server"
	ErrNetworkTimeout    ErrorKind = "network_timeout"
	ErrNetworkConnection ErrorKind = "network_connection"
)

// GenerationError - 분류된 실패. 핸들러 경계 밖으로 나가지 않는다
type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// HTTPStatus - 실패 분류별 HTTP 상태 코드
func (e *GenerationError) HTTPStatus() int {
	switch e.Kind {
	case ErrInputValidation:
		return http.StatusBadRequest
	case ErrConfiguration:
		return http.StatusServiceUnavailable
	case ErrUpstreamAuth:
		return http.StatusUnauthorized
	case ErrUpstreamRateLimit:
		return http.StatusTooManyRequests
	case ErrUpstreamServer, ErrUpstreamRequest, ErrNetworkConnection:
		return http.StatusBadGateway
	case ErrNetworkTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// IsUpstream - 업스트림/네트워크 계열 실패 여부 (activity 분류용)
func (e *GenerationError) IsUpstream() bool {
	switch e.Kind {
	case ErrUpstreamAuth, ErrUpstreamRateLimit, ErrUpstreamRequest,
		ErrUpstreamServer, ErrNetworkTimeout, ErrNetworkConnection:
		return true
	}
	return false
}

func newError(kind ErrorKind, format string, args ...interface{}) *GenerationError {
	return &GenerationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind ErrorKind, err error, format string, args ...interface{}) *GenerationError {
	return &GenerationError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
