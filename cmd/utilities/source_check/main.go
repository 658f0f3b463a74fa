package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/julender/julender/cmd/utilities/common"
	julcommon "github.com/julender/julender/common"
	"github.com/julender/julender/common/rcontext"
	"github.com/julender/julender/controllers/download_controller"
	"github.com/julender/julender/release"
	"github.com/julender/julender/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "julender.yaml", "The path to the configuration")
	outFile := flag.String("outFile", "./missing-sources.txt", "File path for where to write the days needing attention")
	flag.Parse()

	cfg := common.LoadConfig(*configPath)

	clock, err := release.NewClock(cfg.Calendar)
	if err != nil {
		panic(err)
	}
	sources, err := storage.NewSourceStore(cfg.Images.Source)
	if err != nil {
		panic(err)
	}

	logrus.Info("Scanning source images: ", sources.Describe())
	ctx := rcontext.Initial(cfg).LogWithFields(logrus.Fields{"source": sources.Describe()})

	problems := make([]string, 0)
	for day := clock.FirstDay(); day <= clock.LastDay(); day++ {
		log := ctx.Log.WithFields(logrus.Fields{"day": day})
		size, err := sources.Stat(ctx, day)
		if err != nil {
			if errors.Is(err, julcommon.ErrSourceNotFound) {
				log.Warn("Missing")
				problems = append(problems, fmt.Sprintf("%02d missing", day))
				continue
			}
			panic(err)
		}
		if size <= 0 {
			log.Warn("Empty")
			problems = append(problems, fmt.Sprintf("%02d empty", day))
			continue
		}

		b, err := sources.Read(ctx, day)
		if err != nil {
			panic(err)
		}
		mime := download_controller.DetectMime(b)
		if !strings.HasPrefix(mime, "image/") {
			log.Warnf("Not an image (%s)", mime)
			problems = append(problems, fmt.Sprintf("%02d %s", day, mime))
			continue
		}
		log.Infof("OK: %s, %s", mime, humanize.Bytes(uint64(size)))
	}

	logrus.Infof("%d days need attention", len(problems))
	f, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	for _, p := range problems {
		if _, err = f.WriteString(p + "\n"); err != nil {
			panic(err)
		}
	}

	logrus.Info("Done! Report written to ", *outFile)
}
