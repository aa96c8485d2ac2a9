package dv

import (
	"fmt"
	"math"
)

// SectionIndex maps a (time, wavelength, z) coordinate to the linear section
// number. Bounds are checked in the order time, wavelength, z. The physical
// order is always Time-major, then wavelength, then Z; the header's
// interleave code does not change it.
func SectionIndex(h Header, t, c, z int) (int64, error) {
	if t < 0 || t >= int(h.NumTimes) {
		return 0, &IndexError{Axis: AxisTime, Index: t, Limit: int(h.NumTimes)}
	}
	if c < 0 || c >= int(h.NumWaves) {
		return 0, &IndexError{Axis: AxisWavelength, Index: c, Limit: int(h.NumWaves)}
	}
	planes := h.NumPlanes()
	if z < 0 || z >= planes {
		return 0, &IndexError{Axis: AxisSection, Index: z, Limit: planes}
	}
	waves := int64(h.NumWaves)
	return int64(t)*waves*int64(planes) + int64(c)*int64(planes) + int64(z), nil
}

// SectionOffset returns the absolute file offset of section (t, c, z).
func SectionOffset(h Header, t, c, z int) (int64, error) {
	idx, err := SectionIndex(h, t, c, z)
	if err != nil {
		return 0, err
	}
	frame, err := h.FrameSize()
	if err != nil {
		return 0, err
	}
	base := h.DataOffset()
	if base < 0 {
		return 0, fmt.Errorf("%w: extended header size %d", ErrUnrecognizedFormat, h.ExtHeaderSize)
	}
	if frame > 0 && idx > (math.MaxInt64-base)/frame {
		return 0, fmt.Errorf("%w: section %d offset overflows", ErrUnrecognizedFormat, idx)
	}
	return base + idx*frame, nil
}
