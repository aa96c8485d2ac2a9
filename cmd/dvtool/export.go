package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dvfile/internal/logger"
	"github.com/samcharles93/dvfile/internal/render"
	"github.com/samcharles93/dvfile/pkg/dv"
)

type exportOptions struct {
	T, C, Z int
	Out     string
	Format  string
	Clip    float64
	Scale   float64
}

func exportCmd() *cli.Command {
	opts := exportOptions{Clip: 0.5, Scale: 1}

	return &cli.Command{
		Name:      "export",
		Usage:     "Render one section to an image file",
		ArgsUsage: "<file.dv>",
		Flags: append(coordFlags(&opts.T, &opts.C, &opts.Z),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output image path, or - for stdout",
				Required:    true,
				Destination: &opts.Out,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "image format (png, tiff, jpeg, bmp, gif); defaults to the output extension",
				Destination: &opts.Format,
			},
			&cli.FloatFlag{
				Name:        "clip",
				Usage:       "percentage of samples saturated at each end",
				Value:       opts.Clip,
				Destination: &opts.Clip,
			},
			&cli.FloatFlag{
				Name:        "scale",
				Usage:       "resize factor",
				Value:       opts.Scale,
				Destination: &opts.Scale,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			applyExportConfig(cmd, cfg, &opts.Format, &opts.Clip)
			if err := runExport(os.Stdout, path, opts); err != nil {
				return err
			}
			logger.FromContext(ctx).Info("section exported", "file", path, "out", opts.Out,
				"t", opts.T, "c", opts.C, "z", opts.Z)
			return nil
		},
	}
}

func runExport(stdout io.Writer, path string, opts exportOptions) error {
	f, err := dv.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	img, err := render.Section(f, opts.T, opts.C, opts.Z, render.Options{
		ClipPercent: opts.Clip,
		Scale:       opts.Scale,
	})
	if err != nil {
		return err
	}

	if opts.Format == "" {
		if opts.Out == "-" {
			return fmt.Errorf("export: --format is required when writing to stdout")
		}
		return render.Save(img, opts.Out)
	}
	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Out == "-" {
		return render.Encode(stdout, img, format)
	}
	out, err := os.Create(opts.Out)
	if err != nil {
		return err
	}
	if err := render.Encode(out, img, format); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
