package util

import (
	"net/http"
)

const ApiKeyHeader = "X-API-KEY"

func GetApiKeyFromRequest(request *http.Request) string {
	return request.Header.Get(ApiKeyHeader)
}

func GetLogSafeQueryString(r *http.Request) string {
	qs := r.URL.Query()

	if qs.Get("api_key") != "" {
		qs.Set("api_key", "redacted")
	}

	return qs.Encode()
}
