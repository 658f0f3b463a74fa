package runtime

import (
	"github.com/getsentry/sentry-go"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/version"
	"github.com/julender/julender/controllers/calendar_controller"
	"github.com/julender/julender/controllers/download_controller"
	"github.com/julender/julender/controllers/maintenance_controller"
	"github.com/julender/julender/controllers/thumbnail_controller"
	"github.com/julender/julender/image_cache"
	"github.com/julender/julender/pool"
	"github.com/julender/julender/release"
	"github.com/julender/julender/sessions"
	"github.com/julender/julender/storage"
	"github.com/julender/julender/storage/datastore/ds_file"
	"github.com/julender/julender/thumbnailing"
	"github.com/sirupsen/logrus"
)

// Services is everything built from a single configuration. Nothing here reads configuration again
// after construction.
type Services struct {
	Config *config.MainRepoConfig

	Clock       *release.Clock
	Gate        *release.Gate
	Sources     storage.SourceStore
	Transformer *thumbnailing.Transformer
	Queue       *pool.Queue
	Cache       *image_cache.Cache
	Sessions    sessions.Store

	Downloads   *download_controller.Controller
	Thumbnails  *thumbnail_controller.Controller
	Calendar    *calendar_controller.Controller
	Maintenance *maintenance_controller.Controller

	watcher *image_cache.SourceWatcher
}

func RunStartupSequence(cfg *config.MainRepoConfig) (*Services, error) {
	version.Print(true)
	logrus.Infof("Calendar %q: days %d-%d of month %d in %s", cfg.Calendar.Title, cfg.Calendar.FirstDay, cfg.Calendar.LastDay, cfg.Calendar.Month, cfg.Calendar.Timezone)

	services, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Tasks.WatchSources {
		if err = services.StartWatcher(); err != nil {
			// Cached thumbnails will just go stale until cleared
			sentry.CaptureException(err)
			logrus.Warn("Unable to watch source images: ", err)
		}
	}

	return services, nil
}

func Build(cfg *config.MainRepoConfig) (*Services, error) {
	clock, err := release.NewClock(cfg.Calendar)
	if err != nil {
		return nil, err
	}

	logrus.Info("Preparing source images...")
	sources, err := storage.NewSourceStore(cfg.Images.Source)
	if err != nil {
		return nil, err
	}
	logrus.Info("Source images: ", sources.Describe())

	logrus.Info("Preparing sessions...")
	store, err := sessions.NewStore(cfg.Sessions)
	if err != nil {
		return nil, err
	}

	s := &Services{
		Config:      cfg,
		Clock:       clock,
		Gate:        release.NewGate(clock),
		Sources:     sources,
		Transformer: thumbnailing.NewTransformer(cfg.Images.JpegQuality),
		Queue:       pool.NewQueue(cfg.Images.NumWorkers, "thumbnails"),
		Sessions:    store,
	}
	s.Cache = image_cache.New(cfg.Caches.ImagePath, cfg.Images.UseCache, s.Transformer, s.Sources, s.Queue)

	s.Downloads = download_controller.New(s.Gate, s.Sources, s.Cache, s.Sessions, cfg.Images)
	s.Thumbnails = thumbnail_controller.New(s.Gate, s.Sources, s.Cache, cfg.Images)
	s.Calendar = calendar_controller.New(cfg.Calendar.Title, s.Clock, s.Sessions)
	s.Maintenance = maintenance_controller.New(cfg.Caches)

	return s, nil
}

// StartWatcher invalidates cached variants when a source file changes. Only local sources can be
// watched; other sources are silently skipped.
func (s *Services) StartWatcher() error {
	fileStore, ok := s.Sources.(*ds_file.FileStore)
	if !ok {
		logrus.Debug("Source store is not local, not watching for changes")
		return nil
	}

	logrus.Info("Watching source images in ", fileStore.BasePath())
	watcher, err := image_cache.WatchSources(s.Cache, fileStore.BasePath(), s.Config.Images.Variants)
	if err != nil {
		return err
	}
	s.watcher = watcher
	return nil
}

func (s *Services) Close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			logrus.Warn("Error closing source watcher: ", err)
		}
	}
	if s.Queue != nil {
		s.Queue.Close()
	}
	if s.Sessions != nil {
		if err := s.Sessions.Close(); err != nil {
			logrus.Warn("Error closing session store: ", err)
		}
	}
}
