package _routers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alioygur/is"
	"github.com/getsentry/sentry-go"
	"github.com/julender/julender/api/_responses"
	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
)

type GeneratorFn = func(r *http.Request, ctx rcontext.RequestContext) interface{}

type RContextRouter struct {
	generatorFn GeneratorFn
	config      *config.MainRepoConfig
	next        http.Handler
}

func NewRContextRouter(generatorFn GeneratorFn, cfg *config.MainRepoConfig, next http.Handler) *RContextRouter {
	return &RContextRouter{generatorFn: generatorFn, config: cfg, next: next}
}

func (c *RContextRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := GetLogger(r)
	rctx := rcontext.FromRequest(r, log, c.config)

	var res interface{}
	res = c.generatorFn(r, rctx)
	if res == nil {
		res = &_responses.EmptyResponse{}
	}

	if err, isErr := res.(error); isErr {
		errRes, expected := _responses.FromError(err)
		if expected {
			log.Info("Request rejected: ", err)
		} else {
			sentry.CaptureException(err)
			log.Error("Unexpected error handling request: ", err)
		}
		res = errRes
	}

	shouldCache := true
	wrappedRes, isNoCache := res.(*_responses.DoNotCacheResponse)
	if isNoCache {
		shouldCache = false
		res = wrappedRes.Payload
	}

	headers := w.Header()

	if _, isNoContent := res.(*_responses.NoContentResponse); isNoContent {
		log.Info("Replying with no content")
		r = writeStatusCode(w, r, http.StatusNoContent)
		if c.next != nil {
			c.next.ServeHTTP(w, r)
		}
		return
	}

	proposedStatusCode := http.StatusOK
	var stream io.ReadCloser
	expectedBytes := int64(0)
	contentType := "application/json"

	if downloadRes, isDownload := res.(*_responses.DownloadResponse); isDownload {
		log.Infof("Replying with result: %T <%d bytes of %s>", res, downloadRes.SizeBytes, downloadRes.ContentType)
		contentType = downloadRes.ContentType
		expectedBytes = downloadRes.SizeBytes
		stream = downloadRes.Data

		if shouldCache {
			headers.Set("Cache-Control", "private, max-age=259200") // 3 days
		}
		if fname := downloadRes.Filename; fname != "" {
			if is.ASCII(fname) {
				headers.Set("Content-Disposition", "attachment; filename=\""+fname+"\"")
			} else {
				headers.Set("Content-Disposition", "attachment; filename*=utf-8''"+url.QueryEscape(fname))
			}
		}
	} else {
		log.Infof("Replying with result: %T %+v", res, res)
		if !shouldCache {
			headers.Set("Cache-Control", "no-store")
		}
	}

	if errRes, isError := res.(*_responses.ErrorResponse); isError {
		proposedStatusCode = StatusForCode(errRes.InternalCode)
	}

	if stream == nil {
		b, err := json.Marshal(res)
		if err != nil {
			panic(err) // blow up this request
		}
		stream = io.NopCloser(bytes.NewReader(b))
		expectedBytes = int64(len(b))
	}
	defer stream.Close()

	headers.Set("Content-Type", contentType)
	if expectedBytes >= 0 {
		headers.Set("Content-Length", strconv.FormatInt(expectedBytes, 10))
	}

	r = writeStatusCode(w, r, proposedStatusCode)

	written, err := io.Copy(w, stream)
	if err != nil {
		log.Warn("Error writing response: ", err)
	} else if expectedBytes >= 0 && written != expectedBytes {
		log.Warnf("Mismatched transfer size: %d expected, %d sent", expectedBytes, written)
	}

	if c.next != nil {
		c.next.ServeHTTP(w, r)
	}
}

// StatusForCode maps an internal error code onto the HTTP status it is served with.
func StatusForCode(internalCode string) int {
	switch internalCode {
	case common.ErrCodeNotFound:
		return http.StatusNotFound
	case common.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrCodeBadRequest:
		return http.StatusBadRequest
	case common.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case common.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default: // includes configuration and transform failures
		return http.StatusInternalServerError
	}
}

func GetStatusCode(r *http.Request) int {
	x, ok := r.Context().Value(common.ContextStatusCode).(int)
	if !ok {
		return http.StatusOK
	}
	return x
}

func writeStatusCode(w http.ResponseWriter, r *http.Request, statusCode int) *http.Request {
	w.WriteHeader(statusCode)
	return r.WithContext(context.WithValue(r.Context(), common.ContextStatusCode, statusCode))
}
