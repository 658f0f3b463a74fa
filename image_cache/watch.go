package image_cache

import (
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/julender/julender/common/config"
	"github.com/sirupsen/logrus"
)

// SourceWatcher drops cached variants of a day when its source file changes on disk.
type SourceWatcher struct {
	watcher  *fsnotify.Watcher
	cache    *Cache
	variants []config.Variant

	lock    sync.Mutex
	pending map[int]bool
}

func WatchSources(cache *Cache, sourceDir string, variants []config.Variant) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = watcher.Add(sourceDir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &SourceWatcher{
		watcher:  watcher,
		cache:    cache,
		variants: variants,
		pending:  make(map[int]bool),
	}

	go func() {
		debounced := debounce.New(1 * time.Second)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if day, isSource := dayFromSourceName(ev.Name); isSource {
					w.lock.Lock()
					w.pending[day] = true
					w.lock.Unlock()
					debounced(w.flush)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Error("error in source watcher: ", err)
			}
		}
	}()

	logrus.Info("Watching ", sourceDir, " for source changes")
	return w, nil
}

func (w *SourceWatcher) flush() {
	w.lock.Lock()
	days := w.pending
	w.pending = make(map[int]bool)
	w.lock.Unlock()

	for day := range days {
		logrus.Infof("Source for day %02d changed - dropping cached thumbnails", day)
		if err := w.cache.Invalidate(day, w.variants); err != nil {
			logrus.Warnf("Failed to drop cached thumbnails for day %02d: %s", day, err)
		}
	}
}

func (w *SourceWatcher) Close() error {
	return w.watcher.Close()
}

func dayFromSourceName(name string) (int, bool) {
	base := path.Base(name)
	if len(base) != 2 {
		return 0, false
	}
	day, err := strconv.Atoi(base)
	if err != nil || day < 0 {
		return 0, false
	}
	return day, true
}
