package image_cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/metrics"
	"github.com/julender/julender/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type Transformer interface {
	Transform(src []byte, variant config.Variant) ([]byte, error)
}

type Sources interface {
	Read(ctx context.Context, day int) ([]byte, error)
}

// Cache persists generated variants under a single directory. Concurrent misses for the same entry
// may each regenerate it; writes are atomic so readers only ever see complete files.
type Cache struct {
	dir         string
	useCache    bool
	transformer Transformer
	sources     Sources
	queue       *pool.Queue
}

// New creates a cache rooted at dir. When useCache is false every Get regenerates (and still
// writes) the entry. The queue may be nil, in which case transforms run on the calling goroutine.
func New(dir string, useCache bool, transformer Transformer, sources Sources, queue *pool.Queue) *Cache {
	return &Cache{
		dir:         dir,
		useCache:    useCache,
		transformer: transformer,
		sources:     sources,
		queue:       queue,
	}
}

func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) Path(day int, variant config.Variant) string {
	return path.Join(c.dir, fmt.Sprintf("%02d_t_%dx%d.jpg", day, variant.MaxWidth, variant.MaxHeight))
}

func (c *Cache) Get(ctx rcontext.RequestContext, day int, variant config.Variant) ([]byte, error) {
	p := c.Path(day, variant)
	if c.useCache {
		b, err := os.ReadFile(p)
		if err == nil && len(b) > 0 {
			metrics.CacheHits.With(prometheus.Labels{"cache": "thumbnails"}).Inc()
			ctx.Log.Debug("Serving cached thumbnail ", p)
			return b, nil
		}
		if err != nil && !os.IsNotExist(err) {
			ctx.Log.Warn("Cached thumbnail unreadable, regenerating: ", err)
		}
	}
	metrics.CacheMisses.With(prometheus.Labels{"cache": "thumbnails"}).Inc()
	return c.generate(ctx, day, variant)
}

// Build regenerates an entry regardless of what is already cached.
func (c *Cache) Build(ctx rcontext.RequestContext, day int, variant config.Variant) ([]byte, error) {
	return c.generate(ctx, day, variant)
}

func (c *Cache) Delete(day int, variant config.Variant) error {
	err := os.Remove(c.Path(day, variant))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: day %d %s", common.ErrThumbnailNotFound, day, variant.Name)
		}
		return err
	}
	metrics.CacheEvictions.With(prometheus.Labels{"cache": "thumbnails", "reason": "deleted"}).Inc()
	return nil
}

// Invalidate removes every listed variant of a day, ignoring entries that were never generated.
func (c *Cache) Invalidate(day int, variants []config.Variant) error {
	var firstErr error
	for _, v := range variants {
		if err := c.Delete(day, v); err != nil && !errors.Is(err, common.ErrThumbnailNotFound) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Cache) generate(ctx rcontext.RequestContext, day int, variant config.Variant) ([]byte, error) {
	src, err := c.sources.Read(ctx, day)
	if err != nil {
		return nil, err
	}

	var out []byte
	err = c.run(func() error {
		var terr error
		out, terr = c.transformer.Transform(src, variant)
		return terr
	})
	if err != nil {
		return nil, err
	}
	metrics.ThumbnailsGenerated.With(prometheus.Labels{"variant": variant.Name}).Inc()

	if err = c.ensureDir(); err != nil {
		return nil, err
	}
	p := c.Path(day, variant)
	if err = writeAtomic(p, out); err != nil {
		return nil, err
	}
	ctx.Log.WithFields(logrus.Fields{
		"day":     day,
		"variant": variant.Name,
		"size":    humanize.Bytes(uint64(len(out))),
	}).Info("Generated thumbnail")
	return out, nil
}

func (c *Cache) run(fn func() error) error {
	if c.queue == nil {
		return fn()
	}
	return c.queue.Do(fn)
}

func (c *Cache) ensureDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("%w: cannot create cache directory %s: %s", common.ErrBadConfiguration, c.dir, err.Error())
	}
	return nil
}
