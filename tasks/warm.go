package tasks

import (
	"errors"
	"time"

	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/release"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ThumbnailCache interface {
	Get(ctx rcontext.RequestContext, day int, variant config.Variant) ([]byte, error)
}

// Warmer fills the thumbnail cache for released days so the first visitor doesn't pay for the
// transform.
type Warmer struct {
	clock       *release.Clock
	cache       ThumbnailCache
	variants    []config.Variant
	concurrency int
	now         func() time.Time
}

func NewWarmer(clock *release.Clock, cache ThumbnailCache, variants []config.Variant, concurrency int) *Warmer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Warmer{
		clock:       clock,
		cache:       cache,
		variants:    variants,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (w *Warmer) SetNow(now func() time.Time) {
	w.now = now
}

// WarmDay makes sure every variant of the day is cached. Days without a source image are skipped.
func (w *Warmer) WarmDay(ctx rcontext.RequestContext, day int) error {
	ctx = ctx.LogWithFields(logrus.Fields{"day": day})
	for _, v := range w.variants {
		if _, err := w.cache.Get(ctx, day, v); err != nil {
			if errors.Is(err, common.ErrSourceNotFound) {
				ctx.Log.Debug("No source image, nothing to warm")
				return nil
			}
			return err
		}
	}
	return nil
}

// WarmReleased warms every day released as of now and returns how many days were processed.
func (w *Warmer) WarmReleased(ctx rcontext.RequestContext) (int, error) {
	releases, err := w.clock.All(w.now())
	if err != nil {
		return 0, err
	}

	g := new(errgroup.Group)
	g.SetLimit(w.concurrency)
	count := 0
	for _, r := range releases {
		if !r.Released {
			continue
		}
		day := r.Day
		count++
		g.Go(func() error {
			return w.WarmDay(ctx, day)
		})
	}
	if err = g.Wait(); err != nil {
		return count, err
	}
	return count, nil
}
