package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cheggaaa/pb"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-biosignal/internal/record"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

func runReplay(args []string, stdout, stderr io.Writer) error {
	var common commonFlags
	fs := newFlagSet("replay", stderr, &common)
	progress := fs.Bool("progress", true, "show a progress bar on stderr")
	quiet := fs.Bool("quiet", false, "do not print updates")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: biosignal replay [flags] <recording.edf>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one EDF file")
	}

	cfg, logger, err := common.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	src, err := record.OpenSource(f, cfg.Pipeline.ResolutionBits)
	if err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(cfg.Pipeline, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	rec, closeRec, err := openFilteredRecorder(cfg, logger)
	if err != nil {
		return err
	}

	out := stdout
	if *quiet {
		out = nil
	}
	s := &sink{logger: logger, out: out, rec: rec}

	var bar *pb.ProgressBar
	if *progress {
		bar = pb.New64(record.FrameCount(info.Size())).Prefix("Replaying ")
		bar.Output = stderr
		bar.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("replaying", zap.String("path", path), zap.Int64("bytes", info.Size()))
	frames := 0
	err = runSession(ctx, runner, s, func(ctx context.Context) error {
		for {
			raw, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := runner.Feed(ctx, raw); err != nil {
				return err
			}
			frames++
			if bar != nil {
				bar.Increment()
			}
		}
	})
	if bar != nil {
		bar.Finish()
	}
	logger.Info("replay finished", zap.Int("frames", frames))
	return errors.Join(err, closeRec())
}
