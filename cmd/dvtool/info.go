package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/dvfile/pkg/dv"
)

type fileSummary struct {
	Path          string        `json:"path"`
	ByteOrder     string        `json:"byte_order"`
	NX            int32         `json:"nx"`
	NY            int32         `json:"ny"`
	NZ            int32         `json:"nz"`
	Planes        int           `json:"planes"`
	Waves         int16         `json:"waves"`
	Times         int16         `json:"times"`
	Mode          int32         `json:"mode"`
	PixelType     string        `json:"pixel_type"`
	SequenceOrder string        `json:"sequence_order"`
	ImageType     string        `json:"image_type"`
	ExtHeaderSize int32         `json:"ext_header_size"`
	Min           float32       `json:"min"`
	Max           float32       `json:"max"`
	Mean          float32       `json:"mean"`
	Wavelengths   []int16       `json:"wavelengths,omitempty"`
	Titles        []string      `json:"titles,omitempty"`
	Sizes         []dv.AxisSize `json:"sizes"`
}

func summarize(f *dv.File) fileSummary {
	h := f.Header()
	return fileSummary{
		Path:          f.Path(),
		ByteOrder:     f.ByteOrder().String(),
		NX:            h.NX,
		NY:            h.NY,
		NZ:            h.NZ,
		Planes:        h.NumPlanes(),
		Waves:         h.NumWaves,
		Times:         h.NumTimes,
		Mode:          int32(h.Mode),
		PixelType:     h.Mode.String(),
		SequenceOrder: h.SequenceOrder(),
		ImageType:     h.ImageType(),
		ExtHeaderSize: h.ExtHeaderSize,
		Min:           h.Min,
		Max:           h.Max,
		Mean:          h.Mean,
		Wavelengths:   h.Wavelengths(),
		Titles:        h.Titles(),
		Sizes:         h.Sizes(),
	}
}

func infoCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print the header of a DV file",
		ArgsUsage: "<file.dv>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print a JSON summary instead of the header listing",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			return runInfo(os.Stdout, path, asJSON)
		},
	}
}

func runInfo(w io.Writer, path string, asJSON bool) error {
	f, err := dv.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if asJSON {
		b, err := json.MarshalIndent(summarize(f), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	if _, err := fmt.Fprintf(w, "File: %s (%s)\n", f.Path(), f.ByteOrder()); err != nil {
		return err
	}
	return f.Header().Format(w)
}

func sizesCmd() *cli.Command {
	return &cli.Command{
		Name:      "sizes",
		Usage:     "Print the axis sizes of a DV file in sequence order",
		ArgsUsage: "<file.dv>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			return runSizes(os.Stdout, path)
		},
	}
}

func runSizes(w io.Writer, path string) error {
	f, err := dv.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	for _, s := range f.Sizes() {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", s.Name, s.Size); err != nil {
			return err
		}
	}
	return nil
}
