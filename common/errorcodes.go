package common

const ErrCodeNotFound = "J_NOT_FOUND"
const ErrCodeUnauthorized = "J_UNAUTHORIZED"
const ErrCodeMethodNotAllowed = "J_METHOD_NOT_ALLOWED"
const ErrCodeBadRequest = "J_BAD_REQUEST"
const ErrCodeRateLimitExceeded = "J_LIMIT_EXCEEDED"
const ErrCodeBadConfiguration = "J_BAD_CONFIGURATION"
const ErrCodeTransformFailed = "J_TRANSFORM_FAILED"
const ErrCodeUnknown = "J_UNKNOWN"
