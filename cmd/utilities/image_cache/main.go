package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/julender/julender/cmd/utilities/common"
	julcommon "github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/common/runtime"
	"github.com/julender/julender/controllers/thumbnail_controller"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type entry struct {
	day     int
	variant config.Variant
	err     error
}

func main() {
	configPath := flag.String("config", "julender.yaml", "The path to the configuration")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] build|clear\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	action := flag.Arg(0)
	if action != "build" && action != "clear" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := common.LoadConfig(*configPath)
	services, err := runtime.Build(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer services.Close()

	ctx := rcontext.Initial(cfg).LogWithFields(logrus.Fields{"action": action})
	entries := run(ctx, services.Thumbnails, action, cfg.Images.NumWorkers)

	failed := 0
	for _, e := range entries {
		log := ctx.Log.WithFields(logrus.Fields{"day": e.day, "size": e.variant.Name})
		if e.err != nil {
			failed++
			log.Error("FAILED: ", e.err)
			continue
		}
		log.Info("OK")
	}

	if failed > 0 {
		logrus.Errorf("%d of %d entries failed", failed, len(entries))
		os.Exit(1)
	}
	logrus.Infof("Done! %d entries processed", len(entries))
}

func run(ctx rcontext.RequestContext, thumbnails *thumbnail_controller.Controller, action string, workers int) []*entry {
	entries := make([]*entry, 0)
	for _, day := range thumbnails.Days() {
		for _, v := range thumbnails.Variants() {
			entries = append(entries, &entry{day: day, variant: v})
		}
	}

	if workers < 1 {
		workers = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, e := range entries {
		e := e
		g.Go(func() error {
			var err error
			if action == "build" {
				err = thumbnails.Build(ctx, e.day, e.variant)
			} else {
				err = thumbnails.Delete(ctx, e.day, e.variant)
				if errors.Is(err, julcommon.ErrThumbnailNotFound) {
					err = nil
				}
			}
			e.err = err
			return nil // keep going, failures are reported per entry
		})
	}
	_ = g.Wait()

	return entries
}
