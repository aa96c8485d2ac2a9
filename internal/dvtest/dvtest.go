// Package dvtest synthesizes DV files for tests.
package dvtest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/dvfile/pkg/dv"
)

// Stack describes a file to synthesize. Zero counts become one.
type Stack struct {
	NX, NY      int
	Planes      int
	Waves       int
	Times       int
	Mode        dv.PixelType
	Order       dv.Endian
	Interleaved int16
	FileType    int16
	MX, MY, MZ  int32
	Min, Max    float32
	Mean        float32
	ExtHeader   int
	WaveLengths []int16
	Titles      []string

	// Pixel returns the value stored at (y, x) of the given linear section.
	// When nil, Index is used.
	Pixel func(section, y, x int) float64

	// TruncateData drops this many bytes from the end of the pixel data.
	TruncateData int
}

func orOne(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

// Index encodes the section number and position so every sample is unique
// for small stacks.
func Index(section, y, x int) float64 {
	return float64(section*100 + y*10 + x)
}

// HeaderBytes encodes the fixed header for s.
func (s Stack) HeaderBytes() []byte {
	order := s.Order.ByteOrder()
	h := make([]byte, dv.HeaderSize)
	putI32 := func(off int, v int32) { order.PutUint32(h[off:], uint32(v)) }
	putI16 := func(off int, v int16) { order.PutUint16(h[off:], uint16(v)) }
	putF32 := func(off int, v float32) { order.PutUint32(h[off:], math.Float32bits(v)) }

	waves, times := orOne(s.Waves), orOne(s.Times)
	putI32(dv.OffNX, int32(s.NX))
	putI32(dv.OffNY, int32(s.NY))
	putI32(dv.OffNZ, int32(orOne(s.Planes)*waves*times))
	putI32(dv.OffMode, int32(s.Mode))
	putI32(dv.OffMX, s.MX)
	putI32(dv.OffMY, s.MY)
	putI32(dv.OffMZ, s.MZ)
	putF32(dv.OffXLen, 0.1)
	putF32(dv.OffYLen, 0.1)
	putF32(dv.OffZLen, 0.2)
	putF32(dv.OffAlpha, 90)
	putF32(dv.OffBeta, 90)
	putF32(dv.OffGamma, 90)
	putI32(dv.OffMapC, 1)
	putI32(dv.OffMapR, 2)
	putI32(dv.OffMapS, 3)
	putF32(dv.OffMin, s.Min)
	putF32(dv.OffMax, s.Max)
	putF32(dv.OffMean, s.Mean)
	putI32(dv.OffExtHeader, int32(s.ExtHeader))
	putI16(dv.OffDVID, -16224) // 0xC0A0
	putI16(dv.OffFileType, s.FileType)
	putI16(dv.OffNumTimes, int16(times))
	putI16(dv.OffInterleaved, s.Interleaved)
	putI16(dv.OffNumWaves, int16(waves))
	for i, w := range s.WaveLengths {
		if i >= 5 {
			break
		}
		putI16(dv.OffWave1+2*i, w)
	}
	putI32(dv.OffNLabels, int32(min(len(s.Titles), dv.NumLabels)))
	for i, title := range s.Titles {
		if i >= dv.NumLabels {
			break
		}
		off := dv.OffLabels + i*dv.LabelSize
		slot := h[off : off+dv.LabelSize]
		for j := range slot {
			slot[j] = ' '
		}
		copy(slot, title)
	}
	return h
}

// Bytes encodes the whole file.
func (s Stack) Bytes() []byte {
	size, err := s.Mode.Size()
	if err != nil {
		panic(err)
	}
	pixel := s.Pixel
	if pixel == nil {
		pixel = Index
	}
	order := s.Order.ByteOrder()
	sections := orOne(s.Planes) * orOne(s.Waves) * orOne(s.Times)

	out := s.HeaderBytes()
	out = append(out, make([]byte, s.ExtHeader)...)
	sample := make([]byte, size)
	for sec := 0; sec < sections; sec++ {
		for y := 0; y < s.NY; y++ {
			for x := 0; x < s.NX; x++ {
				v := pixel(sec, y, x)
				clear(sample)
				switch s.Mode {
				case dv.PixelUint8:
					sample[0] = uint8(v)
				case dv.PixelInt16, dv.PixelInt16Alt:
					order.PutUint16(sample, uint16(int16(v)))
				case dv.PixelUint16:
					order.PutUint16(sample, uint16(v))
				case dv.PixelInt32:
					order.PutUint32(sample, uint32(int32(v)))
				case dv.PixelFloat32:
					order.PutUint32(sample, math.Float32bits(float32(v)))
				case dv.PixelComplexInt16:
					order.PutUint16(sample, uint16(int16(v)))
				case dv.PixelComplex64:
					order.PutUint32(sample, math.Float32bits(float32(v)))
				}
				out = append(out, sample...)
			}
		}
	}
	if s.TruncateData > 0 {
		out = out[:max(len(out)-s.TruncateData, dv.HeaderSize)]
	}
	return out
}

// Write stores s under a fresh temp dir and returns its path.
func Write(t testing.TB, s Stack) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stack.dv")
	if err := os.WriteFile(path, s.Bytes(), 0o644); err != nil {
		t.Fatalf("write dv fixture: %v", err)
	}
	return path
}

// WriteRaw stores arbitrary bytes as a .dv file and returns its path.
func WriteRaw(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.dv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write raw fixture: %v", err)
	}
	return path
}
