package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/julender/julender/api"
	v1 "github.com/julender/julender/api/v1"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/logging"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/common/runtime"
	"github.com/julender/julender/common/version"
	"github.com/julender/julender/metrics"
	"github.com/julender/julender/tasks"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "julender.yaml", "The path to the configuration")
	versionFlag := flag.Bool("version", false, "Prints the version and exits")
	flag.Parse()

	if *versionFlag {
		version.Print(false)
		return // exit 0
	}

	// Override config path with config for Docker users
	configEnv := os.Getenv("JUL_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	if cfg.Sentry.Enabled {
		logrus.Info("Setting up Sentry for debugging...")
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.Dsn,
			Environment: cfg.Sentry.Environment,
			Debug:       cfg.Sentry.Debug,
			Release:     fmt.Sprintf("%s-%s", version.Version, version.GitCommit),
		})
		if err != nil {
			panic(err)
		}
	}
	defer sentry.Flush(2 * time.Second)
	defer sentry.Recover()

	err = logging.Setup(
		cfg.General.LogDirectory,
		cfg.General.LogColors,
		cfg.General.JsonLogs,
		cfg.General.LogLevel,
	)
	if err != nil {
		panic(err)
	}

	logrus.Info("Starting up...")
	services, err := runtime.RunStartupSequence(cfg)
	if err != nil {
		sentry.CaptureException(err)
		logrus.Fatal(err)
	}

	if cfg.Tasks.WarmOnRelease {
		logrus.Info("Starting recurring tasks...")
		warmer := tasks.NewWarmer(services.Clock, services.Cache, cfg.Images.Variants, cfg.Images.NumWorkers)
		if err = tasks.StartAll(warmer, rcontext.Initial(cfg)); err != nil {
			sentry.CaptureException(err)
			logrus.Fatal(err)
		}
	}

	logrus.Info("Starting calendar...")
	metrics.Init(cfg.Metrics)
	web := api.Init(cfg, &v1.Handlers{
		Downloads:   services.Downloads,
		Thumbnails:  services.Thumbnails,
		Calendar:    services.Calendar,
		Maintenance: services.Maintenance,
	})

	// Set up a function to stop everything
	stopAllButWeb := func() {
		logrus.Info("Stopping metrics...")
		metrics.Stop()

		logrus.Info("Stopping recurring tasks...")
		tasks.StopAll()

		logrus.Info("Stopping services...")
		services.Close()
	}

	// Set up a listener for SIGINT
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	selfStop := false
	go func() {
		<-stop
		selfStop = true

		logrus.Warn("Stop signal received")
		logrus.Info("Stopping web server...")
		api.Stop()
	}()

	// Wait for the web server to exit nicely
	web.Wait()

	stopAllButWeb()
	if !selfStop {
		logrus.Warn("Web server stopped on its own")
	}

	// For debugging
	logrus.Info("Goodbye!")
}
