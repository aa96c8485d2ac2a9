package dv_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/dvfile/internal/dvtest"
	"github.com/samcharles93/dvfile/pkg/dv"
)

func TestPixelTypeSize(t *testing.T) {
	t.Parallel()

	want := map[dv.PixelType]int{
		dv.PixelUint8:        1,
		dv.PixelInt16:        2,
		dv.PixelFloat32:      4,
		dv.PixelComplexInt16: 4,
		dv.PixelComplex64:    8,
		dv.PixelInt16Alt:     2,
		dv.PixelUint16:       2,
		dv.PixelInt32:        4,
	}
	for p, size := range want {
		got, err := p.Size()
		require.NoError(t, err, p.String())
		assert.Equal(t, size, got, p.String())
		assert.True(t, p.Valid())
	}

	for _, bad := range []dv.PixelType{-1, 8, 12, 101} {
		size, err := bad.Size()
		require.ErrorIs(t, err, dv.ErrUnknownPixelType)
		assert.Zero(t, size)
		assert.False(t, bad.Valid())
		assert.Contains(t, bad.String(), "PixelType(")
	}
}

func TestPixelTypeKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, dv.KindInteger, dv.PixelUint16.Kind())
	assert.Equal(t, dv.KindFloat, dv.PixelFloat32.Kind())
	assert.Equal(t, dv.KindComplex, dv.PixelComplex64.Kind())
	assert.Equal(t, "complex", dv.PixelComplexInt16.Kind().String())
	assert.Equal(t, "unknown", dv.PixelType(42).Kind().String())
}

func TestDetectByteOrder(t *testing.T) {
	t.Parallel()

	little := dvtest.Stack{NX: 2, NY: 2, Mode: dv.PixelUint8}.HeaderBytes()
	got, err := dv.DetectByteOrder(bytes.NewReader(little))
	require.NoError(t, err)
	assert.Equal(t, dv.LittleEndian, got)
	assert.Equal(t, []byte{0xA0, 0xC0}, little[dv.MarkerOffset:dv.MarkerOffset+2])

	big := dvtest.Stack{NX: 2, NY: 2, Mode: dv.PixelUint8, Order: dv.BigEndian}.HeaderBytes()
	got, err = dv.DetectByteOrder(bytes.NewReader(big))
	require.NoError(t, err)
	assert.Equal(t, dv.BigEndian, got)
	assert.Equal(t, []byte{0xC0, 0xA0}, big[dv.MarkerOffset:dv.MarkerOffset+2])
}

func TestDetectByteOrderRejectsForeignFiles(t *testing.T) {
	t.Parallel()

	doubled := make([]byte, dv.HeaderSize)
	doubled[dv.MarkerOffset], doubled[dv.MarkerOffset+1] = 0xA0, 0xA0

	cases := map[string][]byte{
		"zeros":     make([]byte, dv.HeaderSize),
		"doubled":   doubled,
		"too short": make([]byte, dv.MarkerOffset+1),
		"empty":     nil,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dv.DetectByteOrder(bytes.NewReader(raw))
			require.ErrorIs(t, err, dv.ErrUnrecognizedFormat)
		})
	}
}

func TestDecodeHeaderDerived(t *testing.T) {
	t.Parallel()

	s := dvtest.Stack{NX: 32, NY: 16, Planes: 3, Waves: 3, Times: 2, Mode: dv.PixelUint16, FileType: 20, Interleaved: 2}
	h, err := dv.DecodeHeader(s.HeaderBytes(), dv.LittleEndian)
	require.NoError(t, err)

	assert.EqualValues(t, 18, h.NZ)
	assert.Equal(t, 3, h.NumPlanes())
	assert.EqualValues(t, 18, h.NumSections())
	assert.Equal(t, "TCZ", h.SequenceOrder())
	assert.Equal(t, "MULTIPOSITION", h.ImageType())
	assert.EqualValues(t, dv.HeaderSize, h.DataOffset())

	frame, err := h.FrameSize()
	require.NoError(t, err)
	assert.EqualValues(t, 32*16*2, frame)

	assert.Equal(t, []dv.AxisSize{
		{Name: "T", Size: 2},
		{Name: "C", Size: 3},
		{Name: "Z", Size: 3},
		{Name: "Y", Size: 16},
		{Name: "X", Size: 32},
	}, h.Sizes())
}

func TestNumPlanesTreatsZeroCountsAsOne(t *testing.T) {
	t.Parallel()

	h := dv.Header{NZ: 7}
	assert.Equal(t, 7, h.NumPlanes())

	h.NumWaves = 7
	assert.Equal(t, 1, h.NumPlanes())
}

func TestSequenceOrder(t *testing.T) {
	t.Parallel()

	for code, want := range map[int16]string{0: "CTZ", 1: "TZC", 2: "TCZ", 3: "CTZ", -1: "CTZ"} {
		assert.Equal(t, want, dv.Header{Interleaved: code}.SequenceOrder(), "code %d", code)
	}
}

func TestImageType(t *testing.T) {
	t.Parallel()

	want := map[int16]string{
		0:    "NORMAL",
		100:  "NORMAL",
		1:    "TILT_SERIES",
		2:    "STEREO_TILT_SERIES",
		3:    "AVERAGED_IMAGES",
		4:    "AVERAGED_STEREO_PAIRS",
		5:    "EM_TILT_SERIES",
		20:   "MULTIPOSITION",
		8000: "PUPIL_FUNCTION",
		6:    "UNKNOWN",
		-3:   "UNKNOWN",
	}
	for code, name := range want {
		assert.Equal(t, name, dv.Header{FileType: code}.ImageType(), "code %d", code)
	}
}

func TestDecodeHeaderBigEndian(t *testing.T) {
	t.Parallel()

	s := dvtest.Reference()
	s.Order = dv.BigEndian
	raw := s.HeaderBytes()

	h, err := dv.DecodeHeader(raw, dv.BigEndian)
	require.NoError(t, err)
	assert.EqualValues(t, 32, h.NX)
	assert.EqualValues(t, 18, h.NZ)
	assert.Equal(t, dv.PixelUint16, h.Mode)
	assert.InDelta(t, 775.8333, h.Mean, 1e-3)

	// Decoding with the wrong order must not silently agree.
	wrong, err := dv.DecodeHeader(raw, dv.LittleEndian)
	require.NoError(t, err)
	assert.NotEqual(t, h.NX, wrong.NX)
}

func TestDecodeHeaderTruncated(t *testing.T) {
	t.Parallel()

	raw := dvtest.Reference().HeaderBytes()
	_, err := dv.DecodeHeader(raw[:dv.HeaderSize-1], dv.LittleEndian)
	require.ErrorIs(t, err, dv.ErrTruncated)

	_, err = dv.ReadHeader(bytes.NewReader(raw[:200]), dv.LittleEndian)
	require.ErrorIs(t, err, dv.ErrTruncated)
}

func TestHeaderTitlesAndWaves(t *testing.T) {
	t.Parallel()

	s := dvtest.Reference()
	s.Titles = []string{"first", "zweite Aufnahme \xe9"}
	h, err := dv.DecodeHeader(s.HeaderBytes(), dv.LittleEndian)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "zweite Aufnahme é"}, h.Titles())
	assert.Equal(t, []int16{528, 617, 685}, h.Wavelengths())

	lo, hi, ok := h.WaveRange(0)
	require.True(t, ok)
	assert.EqualValues(t, 215, lo)
	assert.EqualValues(t, 1743, hi)
	_, _, ok = h.WaveRange(5)
	assert.False(t, ok)
}

func TestHeaderFormat(t *testing.T) {
	t.Parallel()

	h, err := dv.DecodeHeader(dvtest.Reference().HeaderBytes(), dv.LittleEndian)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, h.Format(&buf))
	out := buf.String()
	assert.Contains(t, out, "Dimensions: 32x32x3")
	assert.Contains(t, out, "Pixel type: UINT16 (6)")
	assert.Contains(t, out, "Bytes per pixel: 2 bytes")
	assert.Contains(t, out, "Sequence order: CTZ")
	assert.Contains(t, out, "Title: reference stack")
}

func TestIndexErrorMatchesSentinel(t *testing.T) {
	t.Parallel()

	var err error = &dv.IndexError{Axis: dv.AxisTime, Index: 4, Limit: 2}
	assert.True(t, errors.Is(err, dv.ErrIndexOutOfRange))
	assert.Contains(t, err.Error(), "Time index 4")
}
