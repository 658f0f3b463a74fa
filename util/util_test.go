package util

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemFileName(t *testing.T) {
	assert.Equal(t, "01", ItemFileName(1))
	assert.Equal(t, "24", ItemFileName(24))
}

func TestPanicToError(t *testing.T) {
	assert.EqualError(t, PanicToError("text"), "text")
	e := errors.New("err")
	assert.Equal(t, e, PanicToError(e))
	assert.EqualError(t, PanicToError(42), "unknown panic")
}

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(32)
	assert.NoError(t, err)
	b, err := GenerateRandomString(32)
	assert.NoError(t, err)
	assert.Len(t, a, 40)
	assert.NotEqual(t, a, b)
}

func TestGetLogSafeQueryString(t *testing.T) {
	r := httptest.NewRequest("GET", "/image/1?size=preview&api_key=secret", nil)
	assert.Equal(t, "api_key=redacted&size=preview", GetLogSafeQueryString(r))
	r.Header.Set(ApiKeyHeader, "k")
	assert.Equal(t, "k", GetApiKeyFromRequest(r))
}
