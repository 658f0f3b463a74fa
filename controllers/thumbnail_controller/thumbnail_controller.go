package thumbnail_controller

import (
	"fmt"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/release"
	"github.com/julender/julender/storage"
	"github.com/sirupsen/logrus"
)

type ThumbnailCache interface {
	Build(ctx rcontext.RequestContext, day int, variant config.Variant) ([]byte, error)
	Delete(day int, variant config.Variant) error
}

// Controller manages individual cache entries. Unlike downloads it ignores release dates, so
// thumbnails can be prepared ahead of time.
type Controller struct {
	gate    *release.Gate
	sources storage.SourceStore
	cache   ThumbnailCache
	images  config.ImagesConfig
}

func New(gate *release.Gate, sources storage.SourceStore, cache ThumbnailCache, images config.ImagesConfig) *Controller {
	return &Controller{
		gate:    gate,
		sources: sources,
		cache:   cache,
		images:  images,
	}
}

func (c *Controller) resolve(rawDay string, size string) (int, config.Variant, error) {
	day, err := c.gate.ParseDay(rawDay)
	if err != nil {
		return 0, config.Variant{}, err
	}
	variant, ok := c.images.FindVariant(size)
	if !ok {
		return 0, config.Variant{}, fmt.Errorf("%w: %q", common.ErrUnknownVariant, size)
	}
	return day, variant, nil
}

func (c *Controller) BuildThumbnail(ctx rcontext.RequestContext, rawDay string, size string) error {
	day, variant, err := c.resolve(rawDay, size)
	if err != nil {
		return err
	}
	return c.Build(ctx, day, variant)
}

func (c *Controller) Build(ctx rcontext.RequestContext, day int, variant config.Variant) error {
	size, err := c.sources.Stat(ctx, day)
	if err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("%w: day %d is empty", common.ErrSourceNotFound, day)
	}

	ctx.Log.WithFields(logrus.Fields{"day": day, "variant": variant.Name}).Info("Building thumbnail")
	_, err = c.cache.Build(ctx, day, variant)
	return err
}

// DeleteThumbnail returns common.ErrThumbnailNotFound when nothing was cached.
func (c *Controller) DeleteThumbnail(ctx rcontext.RequestContext, rawDay string, size string) error {
	day, variant, err := c.resolve(rawDay, size)
	if err != nil {
		return err
	}
	return c.Delete(ctx, day, variant)
}

func (c *Controller) Delete(ctx rcontext.RequestContext, day int, variant config.Variant) error {
	ctx.Log.WithFields(logrus.Fields{"day": day, "variant": variant.Name}).Info("Deleting thumbnail")
	return c.cache.Delete(day, variant)
}

func (c *Controller) Variants() []config.Variant {
	return c.images.Variants
}

func (c *Controller) Days() []int {
	clock := c.gate.Clock()
	days := make([]int, 0, clock.LastDay()-clock.FirstDay()+1)
	for d := clock.FirstDay(); d <= clock.LastDay(); d++ {
		days = append(days, d)
	}
	return days
}
