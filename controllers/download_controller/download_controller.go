package download_controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/metrics"
	"github.com/julender/julender/release"
	"github.com/julender/julender/sessions"
	"github.com/julender/julender/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const DispositionDownload = "download"
const OctetStream = "application/octet-stream"

type ThumbnailCache interface {
	Get(ctx rcontext.RequestContext, day int, variant config.Variant) ([]byte, error)
}

type Controller struct {
	gate     *release.Gate
	sources  storage.SourceStore
	cache    ThumbnailCache
	sessions sessions.Store
	images   config.ImagesConfig
	now      func() time.Time
}

type Request struct {
	Day         string
	Size        string
	Disposition string
	SessionId   string
}

type Image struct {
	Data        []byte
	ContentType string
	SizeBytes   int64

	// Filename is only set when the image should be saved rather than displayed.
	Filename string
}

func New(gate *release.Gate, sources storage.SourceStore, cache ThumbnailCache, store sessions.Store, images config.ImagesConfig) *Controller {
	return &Controller{
		gate:     gate,
		sources:  sources,
		cache:    cache,
		sessions: store,
		images:   images,
		now:      time.Now,
	}
}

// SetNow replaces the reference clock used for release checks.
func (c *Controller) SetNow(now func() time.Time) {
	c.now = now
}

func (c *Controller) GetImage(ctx rcontext.RequestContext, req Request) (*Image, error) {
	day, err := c.gate.Authorize(req.Day, c.now())
	if err != nil {
		return nil, err
	}
	ctx = ctx.LogWithFields(logrus.Fields{"day": day})

	size, err := c.sources.Stat(ctx, day)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: day %d is empty", common.ErrSourceNotFound, day)
	}

	if err = sessions.MarkOpened(ctx, c.sessions, req.SessionId, day); err != nil {
		ctx.Log.Warn("Failed to record opened day: ", err)
	}

	// size=download is an older spelling of disposition=download for the original image
	sizeName := req.Size
	download := req.Disposition == DispositionDownload
	if sizeName == DispositionDownload {
		sizeName = ""
		download = true
	}

	var data []byte
	variantLabel := "original"
	if variant, ok := c.images.FindVariant(sizeName); ok {
		variantLabel = variant.Name
		data, err = c.cache.Get(ctx, day, variant)
	} else {
		data, err = c.sources.Read(ctx, day)
	}
	if err != nil {
		return nil, err
	}

	mime := DetectMime(data)
	img := &Image{
		Data:        data,
		ContentType: mime,
		SizeBytes:   int64(len(data)),
	}
	disposition := "inline"
	if download {
		disposition = "attachment"
		img.ContentType = OctetStream
		img.Filename = fmt.Sprintf("day_%02d.%s", day, ExtensionFor(mime))
	}

	metrics.ImagesServed.With(prometheus.Labels{"variant": variantLabel, "disposition": disposition}).Inc()
	return img, nil
}

// DetectMime inspects the content and returns its media type without parameters.
func DetectMime(b []byte) string {
	if len(b) == 0 {
		return OctetStream
	}
	mime := mimetype.Detect(b).String()
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(mime)
	if mime == "" {
		return OctetStream
	}
	return mime
}

// ExtensionFor uses the media subtype as a file extension, falling back to "bin".
func ExtensionFor(mime string) string {
	if mime == OctetStream {
		return "bin"
	}
	parts := strings.SplitN(mime, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "bin"
	}
	return parts[1]
}
