package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies completion API failures.
type ErrorKind string

const (
	// KindRateLimited indicates the provider rejected the request for quota reasons (HTTP 429).
	KindRateLimited ErrorKind = "rate_limited"
	// KindUnauthorized indicates an invalid or expired credential (HTTP 401).
	KindUnauthorized ErrorKind = "unauthorized"
	// KindForbidden indicates the account lacks access to the requested resource (HTTP 403).
	KindForbidden ErrorKind = "forbidden"
	// KindNotFound indicates a missing endpoint or misconfigured model name (HTTP 404).
	KindNotFound ErrorKind = "not_found"
	// KindUpstreamError indicates a provider-side server failure (HTTP 5xx).
	KindUpstreamError ErrorKind = "upstream_error"
	// KindUnknown covers everything the other kinds don't.
	KindUnknown ErrorKind = "unknown"
)

// userGuidance maps each error kind to the message shown in the conversation log.
var userGuidance = map[ErrorKind]string{
	KindRateLimited:   "API请求频率过高，请稍后再试。如果问题持续，请检查API账户的配额和限制。",
	KindUnauthorized:  "API密钥无效或已过期，请检查环境变量中的密钥配置。",
	KindForbidden:     "没有API访问权限，请检查账户状态和权限设置。",
	KindNotFound:      "请求的API资源不存在，请检查模型名称是否正确。",
	KindUpstreamError: "AI服务服务器错误，请稍后再试。",
	KindUnknown:       "请求AI服务失败，请稍后再试。",
}

// APIError represents a failed completion request, classified by kind.
type APIError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Body       string
	err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s api error (status %d, %s): %s", e.Provider, e.StatusCode, e.Kind, e.Body)
	}
	if e.err != nil {
		return fmt.Sprintf("%s api error (%s): %v", e.Provider, e.Kind, e.err)
	}
	return fmt.Sprintf("%s api error (%s)", e.Provider, e.Kind)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// UserMessage returns the human-readable guidance for this error,
// suitable for appending to the conversation transcript.
func (e *APIError) UserMessage() string {
	if msg, ok := userGuidance[e.Kind]; ok {
		return msg
	}
	return userGuidance[KindUnknown]
}

// ConfigurationError indicates the selected provider's credential is missing.
// It is raised before any network call is attempted.
type ConfigurationError struct {
	Provider string
	EnvVar   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %s is not configured: environment variable %s is empty", e.Provider, e.EnvVar)
}

// UserMessage returns the configuration guidance shown to the user.
func (e *ConfigurationError) UserMessage() string {
	return fmt.Sprintf("未配置 %s API密钥。请在环境变量 %s 中设置相应的密钥。", e.Provider, e.EnvVar)
}

// ClassifyStatus maps an HTTP status code to an error kind.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindUpstreamError
	default:
		return KindUnknown
	}
}

// KindOf extracts the error kind from err, or KindUnknown if err is not an APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// UserMessage returns the conversation-facing text for any completion error.
func UserMessage(err error) string {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.UserMessage()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return userGuidance[KindUnknown]
}
