package common

import (
	"errors"
)

var ErrInvalidItem = errors.New("invalid id")
var ErrNotYetReleased = errors.New("not yet released")
var ErrSourceNotFound = errors.New("file not found")
var ErrThumbnailNotFound = errors.New("thumbnail not found")
var ErrUnknownVariant = errors.New("unknown image size")
var ErrUnknownCacheDomain = errors.New("invalid cache")
var ErrBadApiKey = errors.New("unauthorized")
var ErrBadConfiguration = errors.New("invalid configuration")
var ErrTransformFailed = errors.New("image transform failed")
