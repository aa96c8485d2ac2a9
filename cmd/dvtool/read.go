package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dvfile/internal/logger"
	"github.com/samcharles93/dvfile/pkg/dv"
	"github.com/samcharles93/dvfile/pkg/ive"
)

const readStream = 1

type readOptions struct {
	T, C, Z int
	Count   int
	Out     string
}

func readCmd() *cli.Command {
	var opts readOptions

	return &cli.Command{
		Name:      "read",
		Usage:     "Read sections and print their statistics",
		ArgsUsage: "<file.dv>",
		Flags: append(coordFlags(&opts.T, &opts.C, &opts.Z),
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "number of consecutive sections to read",
				Value:       1,
				Destination: &opts.Count,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "also write the raw section bytes to this file",
				Destination: &opts.Out,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			return runRead(os.Stdout, logger.FromContext(ctx), path, opts)
		},
	}
}

// runRead positions at (T, C, Z) and reads Count sections sequentially
// through a stream registry.
func runRead(w io.Writer, log logger.Logger, path string, opts readOptions) error {
	if opts.Count < 1 {
		return fmt.Errorf("read: count must be at least 1, got %d", opts.Count)
	}
	reg := ive.NewRegistry(log)
	defer func() { _ = reg.CloseAll() }()

	if err := reg.Open(readStream, path, ive.ModeReadOnly); err != nil {
		return err
	}
	sum, err := reg.Summary(readStream)
	if err != nil {
		return err
	}
	f, err := reg.File(readStream)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "extents %v grid %v mode %s min %g max %g mean %g\n",
		sum.Extents, sum.Grid, sum.Mode, sum.Min, sum.Max, sum.Mean)

	h := f.Header()
	start, err := dv.SectionIndex(h, opts.T, opts.C, opts.Z)
	if err != nil {
		return err
	}
	if err := reg.Position(readStream, opts.Z, opts.C, opts.T); err != nil {
		return err
	}

	var raw io.Writer
	if opts.Out != "" {
		out, err := os.Create(opts.Out)
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()
		raw = out
	}

	buf, err := f.NewSectionBuffer()
	if err != nil {
		return err
	}
	for i := 0; i < opts.Count; i++ {
		if err := reg.ReadSection(readStream, buf); err != nil {
			return fmt.Errorf("section %d: %w", start+int64(i), err)
		}
		samples, err := dv.DecodeSamples(buf, h.Mode, f.ByteOrder())
		if err != nil {
			return err
		}
		lo, hi, mean := stats(samples)
		fmt.Fprintf(w, "section %d: min %g max %g mean %.3f head %v\n",
			start+int64(i), lo, hi, mean, samples[:min(3, len(samples))])
		if raw != nil {
			if _, err := raw.Write(buf); err != nil {
				return err
			}
		}
	}
	return nil
}

func stats(samples []float32) (lo, hi float32, mean float64) {
	if len(samples) == 0 {
		return 0, 0, 0
	}
	lo, hi = samples[0], samples[0]
	var sum float64
	for _, v := range samples {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += float64(v)
	}
	return lo, hi, sum / float64(len(samples))
}
