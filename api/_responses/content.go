package _responses

import "io"

type EmptyResponse struct{}

type NoContentResponse struct{}

type DoNotCacheResponse struct {
	Payload interface{}
}

type DownloadResponse struct {
	ContentType string
	Filename    string
	SizeBytes   int64
	Data        io.ReadCloser
}
