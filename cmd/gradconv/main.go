// Command gradconv converts Photoshop gradient files (.grd) to Affinity
// palettes, or rewrites them as .grd, optionally split into several files.
//
// Usage:
//
//	gradconv [flags] file.grd...
//	gradconv -j 4 -job jobs.hcl
//	gradconv -watch dir -o outdir
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/colorwav3/gradkit"
	"github.com/colorwav3/gradkit/internal/convert"
	"github.com/colorwav3/gradkit/internal/job"
	"github.com/colorwav3/gradkit/internal/watch"
)

type config struct {
	outDir    string
	format    string
	split     string
	splitSize int
	jobFile   string
	watchDir  string
	jobs      int
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.outDir, "o", "", "output directory (default: next to each input)")
	flag.StringVar(&cfg.format, "format", string(convert.FormatAfpalette), "output format: afpalette, grd or png")
	flag.StringVar(&cfg.split, "split", string(convert.SplitNone), "split output: none, groups or count")
	flag.IntVar(&cfg.splitSize, "split-size", gradkit.DefaultSplitSize, "gradients per file with -split count")
	flag.StringVar(&cfg.jobFile, "job", "", "run the conversions listed in an HCL job file")
	flag.StringVar(&cfg.watchDir, "watch", "", "convert .grd files written to this directory until interrupted")
	flag.IntVar(&cfg.jobs, "j", 0, "concurrent conversions (default: job file parallelism, else one per CPU)")
	flag.BoolVar(&cfg.verbose, "v", false, "log per-gradient detail")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: gradconv [flags] file.grd...\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gradkit.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, flag.Args()); err != nil {
		logger.Error("gradconv failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, inputs []string) error {
	switch {
	case cfg.jobFile != "":
		f, err := job.Load(cfg.jobFile)
		if err != nil {
			return err
		}
		if cfg.jobs > 0 {
			f.Parallelism = cfg.jobs
		}
		_, err = f.Run(ctx)
		return err

	case cfg.watchDir != "":
		return watchDir(ctx, cfg)

	case len(inputs) == 0:
		flag.Usage()
		return errors.New("no input files")
	}

	reqs := make([]convert.Request, len(inputs))
	for i, in := range inputs {
		reqs[i] = request(cfg, in)
	}
	var errs []error
	for _, r := range convert.Files(ctx, reqs, cfg.jobs) {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

func request(cfg config, input string) convert.Request {
	return convert.Request{
		Input:     input,
		OutputDir: cfg.outDir,
		Format:    convert.Format(cfg.format),
		Split:     convert.Split(cfg.split),
		SplitSize: cfg.splitSize,
	}
}

func watchDir(ctx context.Context, cfg config) error {
	format, err := convert.ParseFormat(cfg.format)
	if err != nil {
		return err
	}
	if format == convert.FormatGRD && cfg.outDir == "" {
		// Output would land in the watched directory and be converted again.
		return errors.New("-watch with -format grd requires -o")
	}
	if _, err := convert.ParseSplit(cfg.split); err != nil {
		return err
	}

	log := gradkit.Logger()
	w, err := watch.New(cfg.watchDir, watch.DefaultDebounce,
		func(path string) error {
			_, err := convert.File(ctx, request(cfg, path))
			return err
		},
		func(err error) {
			log.Warn("watch: conversion failed", "err", err)
		},
	)
	if err != nil {
		return fmt.Errorf("watch %s: %w", cfg.watchDir, err)
	}
	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}
