package main

import (
	"flag"
	"os"

	"github.com/julender/julender/common/config"
	"github.com/julender/julender/common/logging"
	"github.com/julender/julender/thumbnailing"
	"github.com/sirupsen/logrus"
)

func main() {
	inFile := flag.String("i", "", "The input file to thumbnail")
	outFile := flag.String("o", "", "The output file to write the thumbnail to. The output is always a JPEG.")
	targetWidth := flag.Int("w", 250, "The maximum width of the thumbnail")
	targetHeight := flag.Int("h", 188, "The maximum height of the thumbnail")
	quality := flag.Int("q", 90, "The JPEG quality to encode with")
	flag.Parse()

	if inFile == nil || *inFile == "" {
		panic("No input file specified")
	}
	if outFile == nil || *outFile == "" {
		panic("No output file specified")
	}

	if err := logging.Setup("-", false, false, "info"); err != nil {
		panic(err)
	}

	variant := config.Variant{Name: "custom", MaxWidth: *targetWidth, MaxHeight: *targetHeight}
	logrus.WithField("width", variant.MaxWidth).WithField("height", variant.MaxHeight).WithField("quality", *quality).Info("Thumbnailing options:")

	src, err := os.ReadFile(*inFile)
	if err != nil {
		panic(err)
	}

	logrus.Info("Generating thumbnail")
	b, err := thumbnailing.NewTransformer(*quality).Transform(src, variant)
	if err != nil {
		panic(err)
	}

	logrus.WithField("bytes", len(b)).Info("Writing generated thumbnail")
	if err = os.WriteFile(*outFile, b, 0644); err != nil {
		panic(err)
	}

	logrus.Info("Done!")
}
