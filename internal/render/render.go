// Package render turns DV sections into viewable grayscale images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/samcharles93/dvfile/pkg/dv"
)

var ErrBadClip = errors.New("render: clip percent must be in [0,50)")

// Options controls contrast stretching and output size.
type Options struct {
	// ClipPercent saturates this percentage of samples at each end of the
	// intensity range before stretching.
	ClipPercent float64
	// Scale resizes the output; 0 and 1 keep the native size.
	Scale float64
}

// Stretch maps samples into the full 16-bit range. Values at or below the
// low percentile become 0, values at or above the high percentile 65535.
// NaN samples render as 0.
func Stretch(samples []float32, nx, ny int, clip float64) (*image.Gray16, error) {
	if clip < 0 || clip >= 50 || math.IsNaN(clip) {
		return nil, fmt.Errorf("%w: %g", ErrBadClip, clip)
	}
	if nx <= 0 || ny <= 0 || len(samples) < nx*ny {
		return nil, fmt.Errorf("render: %d samples do not fill %dx%d", len(samples), nx, ny)
	}
	samples = samples[:nx*ny]
	lo, hi := Percentiles(samples, clip)

	img := image.NewGray16(image.Rect(0, 0, nx, ny))
	span := float64(hi - lo)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			v := samples[y*nx+x]
			var g uint16
			if span > 0 && !math.IsNaN(float64(v)) {
				n := (float64(v) - float64(lo)) / span
				g = uint16(math.Round(math.Max(0, math.Min(1, n)) * math.MaxUint16))
			}
			img.SetGray16(x, y, color.Gray16{Y: g})
		}
	}
	return img, nil
}

// Percentiles returns the clip and 100-clip percentiles of samples. NaN and
// infinite samples are ignored.
func Percentiles(samples []float32, clip float64) (lo, hi float32) {
	sorted := make([]float32, 0, len(samples))
	for _, v := range samples {
		if f := float64(v); !math.IsNaN(f) && !math.IsInf(f, 0) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return 0, 0
	}
	slices.Sort(sorted)
	last := float64(len(sorted) - 1)
	lo = sorted[int(math.Floor(clip/100*last))]
	hi = sorted[int(math.Ceil((1-clip/100)*last))]
	return lo, hi
}

// Section reads section (t, c, z) of f and renders it.
func Section(f *dv.File, t, c, z int, opts Options) (image.Image, error) {
	samples, err := f.ReadSamples(t, c, z)
	if err != nil {
		return nil, err
	}
	h := f.Header()
	img, err := Stretch(samples, int(h.NX), int(h.NY), opts.ClipPercent)
	if err != nil {
		return nil, err
	}
	return Resize(img, opts.Scale), nil
}

// Resize scales img with a Lanczos filter. Scales of 0 or 1 return img.
func Resize(img image.Image, scale float64) image.Image {
	if scale <= 0 || scale == 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// ParseFormat accepts an image format name or extension such as "png",
// ".tif" or "jpeg".
func ParseFormat(name string) (imaging.Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	return imaging.FormatFromExtension(ext)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	return imaging.Encode(w, img, format)
}

// Save writes img to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	return imaging.Save(img, path)
}

// ContentType returns the MIME type for format.
func ContentType(format imaging.Format) string {
	switch format {
	case imaging.PNG:
		return "image/png"
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.GIF:
		return "image/gif"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
