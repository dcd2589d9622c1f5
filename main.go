package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Luzifer/go_helpers/v2/str"
	"github.com/Luzifer/rconfig/v2"
	"github.com/sirupsen/logrus"

	"github.com/Luzifer/fres-extract/fres"
	"github.com/Luzifer/fres-extract/source"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o640
	platformAuto    = "auto"
)

var (
	cfg = struct {
		Category        []string `flag:"category,c" default:"" description:"Only decode these categories (Model, Texture, EmbeddedFiles, ...)"`
		Concurrency     int      `flag:"concurrency" default:"4" description:"Number of subfiles to decode in parallel"`
		Dest            string   `flag:"dest,d" default:"." description:"Path prefix to use to extract files to"`
		ExportSkeletons bool     `flag:"export-skeletons" default:"false" description:"Write model skeletons as glTF binary files to the destination"`
		Extract         bool     `flag:"extract,x" default:"false" description:"Extract embedded files and texture data (if not given contents are just listed)"`
		LogLevel        string   `flag:"log-level" default:"info" description:"Log level (debug, info, warn, error, fatal)"`
		Platform        string   `flag:"platform,p" default:"auto" description:"Platform of the container (auto, wiiu, switch)"`
		VersionAndExit  bool     `flag:"version" default:"false" description:"Prints current version and exits"`
	}{}

	version = "dev"
)

func initApp() (err error) {
	if err = rconfig.ParseAndValidate(&cfg); err != nil {
		return fmt.Errorf("parsing CLI options: %w", err)
	}

	l, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log-level: %w", err)
	}
	logrus.SetLevel(l)

	return nil
}

func decodeOptions(buf []byte) ([]fres.Option, error) {
	opts := []fres.Option{
		fres.WithLogger(logrus.StandardLogger()),
		fres.WithConcurrency(cfg.Concurrency),
	}

	if cfg.Platform != platformAuto {
		p, err := fres.ParsePlatform(cfg.Platform)
		if err != nil {
			return nil, fmt.Errorf("parsing platform: %w", err)
		}
		opts = append(opts, fres.WithPlatform(p))
	} else if _, ok := fres.DetectPlatform(buf); !ok {
		return nil, fmt.Errorf("input is no FRES container")
	}

	var cats []fres.Category
	for _, name := range cfg.Category {
		if name == "" {
			continue
		}

		c, err := fres.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("parsing category: %w", err)
		}
		cats = append(cats, c)
	}

	if len(cats) > 0 {
		opts = append(opts, fres.WithCategories(cats...))
	}

	return opts, nil
}

func prepareDest() error {
	destInfo, err := os.Stat(cfg.Dest)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("accessing destination: %w", err)
		}

		if err := os.MkdirAll(cfg.Dest, dirPermissions); err != nil {
			return fmt.Errorf("creating destination directory: %w", err)
		}
	}

	if destInfo != nil && !destInfo.IsDir() {
		return fmt.Errorf("destination exists and is no directory")
	}

	return nil
}

func main() {
	var err error
	if err = initApp(); err != nil {
		logrus.WithError(err).Fatal("initializing app")
	}

	if cfg.VersionAndExit {
		fmt.Printf("fres-extract %s\n", version) //nolint:forbidigo
		os.Exit(0)
	}

	var (
		input   string
		extract []string
	)

	switch len(rconfig.Args()) {
	case 1:
		// No positional arguments
		logrus.Fatal("no FRES container given")

	case 2: //nolint:mnd
		input = rconfig.Args()[1]

	default:
		input = rconfig.Args()[1]
		extract = rconfig.Args()[2:]
	}

	buf, layers, err := source.ReadFile(input)
	if err != nil {
		logrus.WithError(err).Fatal("loading input file")
	}

	for _, l := range layers {
		logrus.WithFields(logrus.Fields{
			"format":          l.Format,
			"compressed_size": l.CompressedSize,
			"size":            l.Size,
		}).Debug("unwrapped compression layer")
	}

	opts, err := decodeOptions(buf)
	if err != nil {
		logrus.WithError(err).Fatal("configuring decoder")
	}

	c, err := fres.DecodeAt(context.Background(), buf, 0, opts...)
	if err != nil {
		logrus.WithError(err).Fatal("decoding container")
	}

	logrus.WithFields(logrus.Fields{
		"name":     c.Name,
		"platform": c.Platform,
		"errors":   len(c.Errors),
	}).Debug("decoded container")

	if cfg.Extract || cfg.ExportSkeletons {
		if err = prepareDest(); err != nil {
			logrus.WithError(err).Fatal("preparing destination")
		}
	}

	for _, cat := range fres.Categories() {
		for _, sf := range c.Category(cat) {
			entryPath := entryName(cat, sf.Name())
			if !str.StringInSlice(entryPath, extract) && len(extract) > 0 {
				// Entries to extract are given but this is not mentioned
				continue
			}

			if err = handleSubfile(entryPath, sf); err != nil {
				logrus.WithError(err).WithField("entry", entryPath).Fatal("writing subfile")
			}
		}
	}

	if len(c.Errors) > 0 {
		logrus.WithField("failed_entries", len(c.Errors)).Warn("container was decoded partially")
	}
}
