package dv

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Header is the decoded fixed header of a DV file. It is a plain value: a
// File hands out copies, so derived properties computed from it are stable.
type Header struct {
	NX, NY, NZ          int32
	Mode                PixelType
	NXStart, NYStart    int32
	NZStart             int32
	MX, MY, MZ          int32
	XLen, YLen, ZLen    float32
	Alpha, Beta, Gamma  float32
	MapC, MapR, MapS    int32
	Min, Max, Mean      float32
	SpaceGroup          int32
	ExtHeaderSize       int32
	DVID                int16
	Blank               int16
	TimeStart           int32
	IBytes              [ibyteSize]byte
	NInt, NReal         int16
	NRes, ZFactor       int16
	Min2, Max2          float32
	Min3, Max3          float32
	Min4, Max4          float32
	FileType            int16
	Lens                int16
	N1, N2, V1, V2      int16
	Min5, Max5          float32
	NumTimes            int16
	Interleaved         int16
	TiltX, TiltY, TiltZ float32
	NumWaves            int16
	Waves               [5]int16
	ZOrigin             float32
	XOrigin, YOrigin    float32
	NLabels             int32
	Labels              [NumLabels][LabelSize]byte
}

func atLeastOne(v int16) int {
	if v == 0 {
		return 1
	}
	return int(v)
}

// NumPlanes is the number of Z sections per wavelength and time point:
// nz / waves / times, with zero counts treated as one.
func (h Header) NumPlanes() int {
	return int(h.NZ) / atLeastOne(h.NumWaves) / atLeastOne(h.NumTimes)
}

// NumSections is the total number of addressable sections.
func (h Header) NumSections() int64 {
	return int64(atLeastOne(h.NumTimes)) * int64(atLeastOne(h.NumWaves)) * int64(h.NumPlanes())
}

// SequenceOrder returns the declared C/T/Z axis naming for the interleave
// code. It is informational: section addressing is always T, C, Z.
func (h Header) SequenceOrder() string {
	switch h.Interleaved {
	case 1:
		return "TZC"
	case 2:
		return "TCZ"
	default:
		return "CTZ"
	}
}

// ImageType names the file type code.
func (h Header) ImageType() string {
	switch h.FileType {
	case 0, 100:
		return "NORMAL"
	case 1:
		return "TILT_SERIES"
	case 2:
		return "STEREO_TILT_SERIES"
	case 3:
		return "AVERAGED_IMAGES"
	case 4:
		return "AVERAGED_STEREO_PAIRS"
	case 5:
		return "EM_TILT_SERIES"
	case 20:
		return "MULTIPOSITION"
	case 8000:
		return "PUPIL_FUNCTION"
	default:
		return "UNKNOWN"
	}
}

// FrameSize is the byte size of one Y×X section. Negative extents, or a
// section too large to address in memory, are a format error.
func (h Header) FrameSize() (int64, error) {
	size, err := h.Mode.Size()
	if err != nil {
		return 0, err
	}
	if h.NX < 0 || h.NY < 0 {
		return 0, fmt.Errorf("%w: section extent %dx%d", ErrUnrecognizedFormat, h.NY, h.NX)
	}
	pixels := int64(h.NY) * int64(h.NX)
	if pixels > int64(math.MaxInt)/int64(size) {
		return 0, fmt.Errorf("%w: section %dx%d exceeds addressable size", ErrUnrecognizedFormat, h.NY, h.NX)
	}
	return pixels * int64(size), nil
}

// DataOffset is the file offset of the first section.
func (h Header) DataOffset() int64 {
	return HeaderSize + int64(h.ExtHeaderSize)
}

// AxisSize pairs an axis letter with its extent.
type AxisSize struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Sizes lists the extents in SequenceOrder followed by Y and X.
func (h Header) Sizes() []AxisSize {
	extent := map[byte]int{
		'T': int(h.NumTimes),
		'C': int(h.NumWaves),
		'Z': h.NumPlanes(),
		'Y': int(h.NY),
		'X': int(h.NX),
	}
	axes := h.SequenceOrder() + "YX"
	out := make([]AxisSize, 0, len(axes))
	for i := 0; i < len(axes); i++ {
		out = append(out, AxisSize{Name: string(axes[i]), Size: extent[axes[i]]})
	}
	return out
}

// WaveRange returns the stored intensity range of wavelength i (0-based).
// Only the first five wavelengths carry statistics.
func (h Header) WaveRange(i int) (lo, hi float32, ok bool) {
	switch i {
	case 0:
		return h.Min, h.Max, true
	case 1:
		return h.Min2, h.Max2, true
	case 2:
		return h.Min3, h.Max3, true
	case 3:
		return h.Min4, h.Max4, true
	case 4:
		return h.Min5, h.Max5, true
	default:
		return 0, 0, false
	}
}

// Wavelengths returns the emission wavelengths of the populated channels.
func (h Header) Wavelengths() []int16 {
	n := min(max(int(h.NumWaves), 0), len(h.Waves))
	out := make([]int16, n)
	copy(out, h.Waves[:n])
	return out
}

// Titles decodes the populated title slots. Titles are Latin-1 text padded
// with spaces or NULs.
func (h Header) Titles() []string {
	n := min(max(int(h.NLabels), 0), NumLabels)
	dec := charmap.ISO8859_1.NewDecoder()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		raw := h.Labels[i][:]
		if j := bytes.IndexByte(raw, 0); j >= 0 {
			raw = raw[:j]
		}
		text, err := dec.Bytes(raw)
		if err != nil {
			text = raw
		}
		out = append(out, strings.TrimRight(string(text), " "))
	}
	return out
}

// Format writes a human readable summary of h.
func (h Header) Format(w io.Writer) error {
	pixel := "unknown"
	if size, err := h.Mode.Size(); err == nil {
		pixel = fmt.Sprintf("%d bytes", size)
	}
	lines := []string{
		"Header:",
		fmt.Sprintf("  Dimensions: %dx%dx%d", h.NY, h.NX, h.NumPlanes()),
		fmt.Sprintf("  Number of wavelengths: %d", h.NumWaves),
		fmt.Sprintf("  Number of time points: %d", h.NumTimes),
		fmt.Sprintf("  Pixel type: %s (%d)", h.Mode, int32(h.Mode)),
		fmt.Sprintf("  Bytes per pixel: %s", pixel),
		fmt.Sprintf("  Pixel spacing: %gx%gx%g", h.XLen, h.YLen, h.ZLen),
		fmt.Sprintf("  mxyz: %dx%dx%d", h.MX, h.MY, h.MZ),
		fmt.Sprintf("  Cell angles: %gx%gx%g", h.Alpha, h.Beta, h.Gamma),
		fmt.Sprintf("  Min/Max/Mean: %g/%g/%g", h.Min, h.Max, h.Mean),
		fmt.Sprintf("  Image type: %s", h.ImageType()),
		fmt.Sprintf("  Sequence order: %s", h.SequenceOrder()),
	}
	for _, t := range h.Titles() {
		lines = append(lines, "  Title: "+t)
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
