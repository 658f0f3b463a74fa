package _responses

import (
	"errors"

	"github.com/julender/julender/common"
)

type ErrorResponse struct {
	Code         string `json:"errcode"`
	Message      string `json:"error"`
	InternalCode string `json:"mr_errcode"`
}

func InternalServerError(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknown, message, common.ErrCodeUnknown}
}

func MethodNotAllowed() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknown, "Method Not Allowed", common.ErrCodeMethodNotAllowed}
}

func RateLimitReached() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeRateLimitExceeded, "Rate Limited", common.ErrCodeRateLimitExceeded}
}

func NotFoundError() *ErrorResponse {
	return NotFound("Not found")
}

func NotFound(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeNotFound, message, common.ErrCodeNotFound}
}

func AuthFailed(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnauthorized, message, common.ErrCodeUnauthorized}
}

func BadRequest(message string) *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknown, message, common.ErrCodeBadRequest}
}

func BadConfiguration() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknown, "Server is misconfigured", common.ErrCodeBadConfiguration}
}

func TransformFailed() *ErrorResponse {
	return &ErrorResponse{common.ErrCodeUnknown, "Image could not be processed", common.ErrCodeTransformFailed}
}

// FromError converts a service error into the response sent to the client. The message is always the
// sentinel's, never the wrapped detail. The boolean is false for server-side failures which should be
// reported.
func FromError(err error) (*ErrorResponse, bool) {
	switch {
	case errors.Is(err, common.ErrInvalidItem):
		return NotFound(common.ErrInvalidItem.Error()), true
	case errors.Is(err, common.ErrSourceNotFound):
		return NotFound(common.ErrSourceNotFound.Error()), true
	case errors.Is(err, common.ErrThumbnailNotFound):
		return NotFound(common.ErrThumbnailNotFound.Error()), true
	case errors.Is(err, common.ErrUnknownVariant):
		return NotFound(common.ErrUnknownVariant.Error()), true
	case errors.Is(err, common.ErrNotYetReleased):
		return AuthFailed(common.ErrNotYetReleased.Error()), true
	case errors.Is(err, common.ErrBadApiKey):
		return AuthFailed(common.ErrBadApiKey.Error()), true
	case errors.Is(err, common.ErrUnknownCacheDomain):
		return BadRequest(common.ErrUnknownCacheDomain.Error()), true
	case errors.Is(err, common.ErrBadConfiguration):
		return BadConfiguration(), false
	case errors.Is(err, common.ErrTransformFailed):
		return TransformFailed(), false
	default:
		return InternalServerError("unexpected error"), false
	}
}
