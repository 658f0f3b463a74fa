package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/didip/tollbooth"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	v1 "github.com/julender/julender/api/v1"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/limits"
	"github.com/sirupsen/logrus"
)

var srv *http.Server
var waitGroup = &sync.WaitGroup{}

// BuildHandler assembles the routes and any configured rate limiting.
func BuildHandler(cfg *config.MainRepoConfig, handlers *v1.Handlers) http.Handler {
	handler := buildRoutes(cfg, handlers)

	if cfg.RateLimit.Enabled {
		logrus.Debug("Enabling rate limit")
		handler = tollbooth.LimitHandler(limits.NewRequestLimiter(cfg.RateLimit), handler)
	}

	return handler
}

func Init(cfg *config.MainRepoConfig, handlers *v1.Handlers) *sync.WaitGroup {
	address := net.JoinHostPort(cfg.General.BindAddress, strconv.Itoa(cfg.General.Port))
	handler := BuildHandler(cfg, handlers)

	// Note: we bind Sentry here to ensure we capture *everything*
	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	srv = &http.Server{Addr: address, Handler: sentryHandler.Handle(handler)}

	waitGroup.Add(1)
	go func() {
		//goland:noinspection HttpUrlsUsage
		logrus.WithField("address", address).Info("Started up. Listening at http://" + address)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			logrus.Fatal(err)
		}

		srv = nil
		waitGroup.Done()
	}()

	return waitGroup
}

func Stop() {
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.Error("Error shutting down web server: ", err)
		}
	}
}
