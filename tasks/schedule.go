package tasks

import (
	"github.com/getsentry/sentry-go"
	"github.com/julender/julender/common/logging"
	"github.com/julender/julender/common/rcontext"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Days are released at local midnight, so the warm-up runs right after.
const WarmSchedule = "0 0 * * *"

var scheduler *cron.Cron

func StartAll(warmer *Warmer, ctx rcontext.RequestContext) error {
	cronLogger := logging.CronLogger{Entry: logrus.WithFields(logrus.Fields{"scheduler": "cron"})}
	scheduler = cron.New(
		cron.WithLocation(warmer.clock.Location()),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	job := func() {
		runWarm(warmer, ctx.LogWithFields(logrus.Fields{"task": "warm_released"}))
	}
	if _, err := scheduler.AddFunc(WarmSchedule, job); err != nil {
		return err
	}
	scheduler.Start()

	// Catch up on anything released while we were down
	go job()

	return nil
}

func StopAll() {
	if scheduler == nil {
		return
	}
	<-scheduler.Stop().Done()
	scheduler = nil
}

func runWarm(warmer *Warmer, ctx rcontext.RequestContext) {
	ctx.Log.Info("Warming thumbnail cache for released days")
	count, err := warmer.WarmReleased(ctx)
	if err != nil {
		sentry.CaptureException(err)
		ctx.Log.Error("Error warming thumbnail cache: ", err)
		return
	}
	ctx.Log.Infof("Warmed thumbnails for %d days", count)
}
